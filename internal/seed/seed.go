// Package seed loads the reference catalogs: the immunization schedule,
// the developmental milestones and the default forum categories. Every
// insert is an upsert keyed on the natural name, so re-running the seed
// is safe and never duplicates or overwrites rows.
package seed

import (
	"context"

	"go.uber.org/zap"

	"swasthyam/internal/model"
	"swasthyam/internal/repository"
)

var vaccineSchedules = []model.VaccineSchedule{
	{VaccineName: "BCG", Description: "Bacillus Calmette-Guerin vaccine", AgeInMonths: 0, DoseNumber: 1, IsMandatory: true, ProtectsAgainst: "Tuberculosis"},
	{VaccineName: "Hepatitis B - Birth dose", Description: "First dose at birth", AgeInMonths: 0, DoseNumber: 1, IsMandatory: true, ProtectsAgainst: "Hepatitis B"},
	{VaccineName: "OPV-0", Description: "Oral polio vaccine, birth dose", AgeInMonths: 0, DoseNumber: 1, IsMandatory: true, ProtectsAgainst: "Poliomyelitis"},
	{VaccineName: "Pentavalent-1", Description: "DPT + Hepatitis B + Hib, first dose", AgeInMonths: 1, DoseNumber: 1, IsMandatory: true, ProtectsAgainst: "Diphtheria, Pertussis, Tetanus, Hepatitis B, Hib"},
	{VaccineName: "Rotavirus-1", Description: "Rotavirus vaccine, first dose", AgeInMonths: 1, DoseNumber: 1, IsMandatory: true, ProtectsAgainst: "Rotavirus diarrhoea"},
	{VaccineName: "Pentavalent-2", Description: "DPT + Hepatitis B + Hib, second dose", AgeInMonths: 2, DoseNumber: 2, IsMandatory: true, ProtectsAgainst: "Diphtheria, Pertussis, Tetanus, Hepatitis B, Hib"},
	{VaccineName: "Pentavalent-3", Description: "DPT + Hepatitis B + Hib, third dose", AgeInMonths: 3, DoseNumber: 3, IsMandatory: true, ProtectsAgainst: "Diphtheria, Pertussis, Tetanus, Hepatitis B, Hib"},
	{VaccineName: "Measles-1", Description: "Measles-containing vaccine, first dose", AgeInMonths: 9, DoseNumber: 1, IsMandatory: true, ProtectsAgainst: "Measles"},
	{VaccineName: "Vitamin A - 1st dose", Description: "Vitamin A supplementation", AgeInMonths: 9, DoseNumber: 1, IsMandatory: false, ProtectsAgainst: "Vitamin A deficiency"},
	{VaccineName: "DPT Booster-1", Description: "First DPT booster", AgeInMonths: 16, DoseNumber: 1, IsMandatory: true, ProtectsAgainst: "Diphtheria, Pertussis, Tetanus"},
}

var milestones = []model.Milestone{
	{Category: model.MilestoneCategorySocial, Title: "Social Smile", Description: "Smiles in response to faces and voices", TypicalAgeMonths: 2},
	{Category: model.MilestoneCategoryMotor, Title: "Holds Head Steady", Description: "Holds head steady without support", TypicalAgeMonths: 4},
	{Category: model.MilestoneCategoryMotor, Title: "Rolls Over", Description: "Rolls from tummy to back and back to tummy", TypicalAgeMonths: 6},
	{Category: model.MilestoneCategorySocial, Title: "Responds to Name", Description: "Turns head when called by name", TypicalAgeMonths: 7},
	{Category: model.MilestoneCategoryMotor, Title: "Sits Without Support", Description: "Sits steadily without help", TypicalAgeMonths: 9},
	{Category: model.MilestoneCategoryLanguage, Title: "Says 'Mama' or 'Dada'", Description: "Uses at least one meaningful word", TypicalAgeMonths: 12},
	{Category: model.MilestoneCategoryMotor, Title: "Walks Alone", Description: "Takes several steps without support", TypicalAgeMonths: 15},
	{Category: model.MilestoneCategoryCognitive, Title: "Points to Objects", Description: "Points to show interest in things", TypicalAgeMonths: 18},
}

var forumCategories = []model.ForumCategory{
	{Name: "Maternal Health", Slug: "maternal-health", Description: "Pregnancy, postpartum and maternal wellbeing", Icon: "heart", DisplayOrder: 1},
	{Name: "Child Nutrition", Slug: "child-nutrition", Description: "Feeding, weaning and balanced diets", Icon: "apple", DisplayOrder: 2},
	{Name: "Mental Wellness", Slug: "mental-wellness", Description: "Emotional health for parents", Icon: "brain", DisplayOrder: 3},
	{Name: "Vaccinations", Slug: "vaccinations", Description: "Immunization schedules and experiences", Icon: "shield", DisplayOrder: 4},
}

// Run upserts all reference data.
func Run(ctx context.Context, catalog *repository.CatalogRepository, forumRepo *repository.ForumRepository, logger *zap.Logger) error {
	for i := range vaccineSchedules {
		if err := catalog.UpsertVaccineSchedule(ctx, &vaccineSchedules[i]); err != nil {
			return err
		}
	}
	logger.Info("Seeded vaccine schedules", zap.Int("count", len(vaccineSchedules)))

	for i := range milestones {
		if err := catalog.UpsertMilestone(ctx, &milestones[i]); err != nil {
			return err
		}
	}
	logger.Info("Seeded milestones", zap.Int("count", len(milestones)))

	for i := range forumCategories {
		if err := forumRepo.UpsertCategory(ctx, &forumCategories[i]); err != nil {
			return err
		}
	}
	logger.Info("Seeded forum categories", zap.Int("count", len(forumCategories)))

	return nil
}

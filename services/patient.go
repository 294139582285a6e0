package services

import (
	"context"
	"log"
	"strings"

	"ClinicCare360/models"
)

// PatientService is the read and write surface over the visit store. Every
// operation is a single store call; there is no cross-document transaction.
type PatientService struct {
	store models.VisitStore
}

func NewPatientService(store models.VisitStore) *PatientService {
	return &PatientService{store: store}
}

func (s *PatientService) ListPatients(ctx context.Context) ([]models.PatientSummary, error) {
	patients, err := s.store.ListPatients(ctx)
	if err != nil {
		log.Println("Error from ListPatients:", err)
		return nil, err
	}
	return patients, nil
}

func (s *PatientService) GetVisit(ctx context.Context, id string) (*models.Visit, error) {
	return s.store.FindByID(ctx, id)
}

// An unknown identity yields an empty history, not an error.
func (s *PatientService) ListVisitsForIdentity(ctx context.Context, name, phone string) ([]models.Visit, error) {
	return s.store.FindByIdentity(ctx, name, phone)
}

/*
* Parse the calendar day
* Widen it to the local 00:00:00.000 - 23:59:59.999 window
* Fetch visits whose followUpDate falls inside, oldest visit first
 */
func (s *PatientService) ListAppointmentsOnDate(ctx context.Context, date string) ([]models.Visit, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		log.Println("Error from ParseDate for appointment date:", err)
		return nil, models.ErrInvalidRange
	}
	start, end := models.DayBounds(day)
	return s.store.FindByFollowUpRange(ctx, start, end)
}

/*
* Both bounds are required
* Widen each bound to its local day boundary
* Count visits and sum fees in one aggregation
* Count unique patients by distinct phone in a second query
 */
func (s *PatientService) GetAnalytics(ctx context.Context, startDate, endDate string) (*models.Analytics, error) {
	if startDate == "" || endDate == "" {
		return nil, models.ErrInvalidRange
	}
	startDay, err := models.ParseDate(startDate)
	if err != nil {
		log.Println("Error from ParseDate for startDate:", err)
		return nil, models.ErrInvalidRange
	}
	endDay, err := models.ParseDate(endDate)
	if err != nil {
		log.Println("Error from ParseDate for endDate:", err)
		return nil, models.ErrInvalidRange
	}
	start, _ := models.DayBounds(startDay)
	_, end := models.DayBounds(endDay)

	totalVisits, totalFees, err := s.store.SumVisits(ctx, start, end)
	if err != nil {
		log.Println("Error from SumVisits:", err)
		return nil, err
	}
	phones, err := s.store.DistinctPhones(ctx, start, end)
	if err != nil {
		log.Println("Error from DistinctPhones:", err)
		return nil, err
	}
	return &models.Analytics{
		TotalVisits:         int(totalVisits),
		TotalFees:           totalFees,
		TotalUniquePatients: len(phones),
	}, nil
}

func (s *PatientService) AddVisit(ctx context.Context, visit *models.Visit) (*models.Visit, error) {
	return s.store.Insert(ctx, visit)
}

func (s *PatientService) UpdateVisit(ctx context.Context, id string, patch map[string]interface{}) (*models.Visit, error) {
	patch, err := models.NormalizeVisitPatch(patch)
	if err != nil {
		log.Println("Error from NormalizeVisitPatch:", err)
		return nil, err
	}
	return s.store.UpdateByID(ctx, id, patch)
}

/*
* All three inputs must be present
* Apply the same patch to every visit sharing the old identity, so a
* corrected name or phone follows the patient across their whole history
 */
func (s *PatientService) UpdateDemographics(ctx context.Context, originalName, originalPhone string, patch map[string]interface{}) (int64, error) {
	if strings.TrimSpace(originalName) == "" || strings.TrimSpace(originalPhone) == "" || len(patch) == 0 {
		return 0, models.ErrMissingInput
	}
	patch, err := models.NormalizeVisitPatch(patch)
	if err != nil {
		log.Println("Error from NormalizeVisitPatch:", err)
		return 0, err
	}
	return s.store.UpdateManyByIdentity(ctx, originalName, originalPhone, patch)
}

func (s *PatientService) DeleteIdentity(ctx context.Context, name, phone string) (int64, error) {
	return s.store.DeleteManyByIdentity(ctx, name, phone)
}

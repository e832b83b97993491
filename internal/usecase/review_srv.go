package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/internal/data/repository"
	"bus-ticketing/internal/dto/request"
	"bus-ticketing/internal/dto/response"
	"bus-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetBusReviews(ctx context.Context, busID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bus, err := s.repo.Bus.FindByID(ctx, req.BusID)
	if err != nil {
		return nil, fmt.Errorf("find bus %d: %w", req.BusID, err)
	}
	if bus == nil {
		return nil, entity.ErrBusNotFound
	}

	passenger, err := s.repo.Passenger.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("find passenger: %w", err)
	}
	if passenger == nil {
		return nil, entity.ErrPassengerNotFound
	}

	// Only passengers who actually travelled may review.
	bookings, err := s.repo.Booking.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("check completed trips: %w", err)
	}
	travelled := false
	for _, b := range bookings {
		if b.BusID == req.BusID && b.Status == entity.BookingStatusCompleted {
			travelled = true
			break
		}
	}
	if !travelled {
		return nil, fmt.Errorf("no completed trip on bus %d for this passenger", req.BusID)
	}

	existing, err := s.repo.Review.FindByPassengerAndBus(ctx, passenger.ID, req.BusID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("passenger already reviewed bus %d", req.BusID)
	}

	review := &entity.Review{
		BaseSimple:  entity.BaseSimple{CreatedAt: time.Now()},
		BusID:       req.BusID,
		PassengerID: passenger.ID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review", zap.Error(err), zap.Int64("bus_id", req.BusID))
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.repo.Bus.UpdateRating(ctx, req.BusID); err != nil {
		s.log.Error("Failed to refresh bus rating", zap.Error(err), zap.Int64("bus_id", req.BusID))
		// Rating refresh is best effort; the review itself is saved.
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("bus_id", req.BusID),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetBusReviews(ctx context.Context, busID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	bus, err := s.repo.Bus.FindByID(ctx, busID)
	if err != nil {
		return nil, fmt.Errorf("find bus %d: %w", busID, err)
	}
	if bus == nil {
		return nil, entity.ErrBusNotFound
	}

	reviews, err := s.repo.Review.FindByBusID(ctx, busID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get bus reviews", zap.Error(err), zap.Int64("bus_id", busID))
		return nil, fmt.Errorf("get reviews for bus %d: %w", busID, err)
	}

	total, err := s.repo.Review.CountByBusID(ctx, busID)
	if err != nil {
		return nil, fmt.Errorf("count reviews for bus %d: %w", busID, err)
	}

	responses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = response.ReviewToResponse(review)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

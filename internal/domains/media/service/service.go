package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fleetrent/config"
	"fleetrent/infras/otel"
	"fleetrent/infras/s3"
	carModel "fleetrent/internal/domains/car/model"
	carRepo "fleetrent/internal/domains/car/repository"
	customerModel "fleetrent/internal/domains/customer/model"
	customerRepo "fleetrent/internal/domains/customer/repository"
	"fleetrent/shared"
	"fleetrent/shared/cache"
	"fleetrent/shared/constant"
	"fleetrent/shared/failure"
	"fleetrent/shared/timezone"
)

const (
	carPhotoDirectory         = "cars"
	customerDocumentDirectory = "customers"
)

type Media interface {
	UploadCarPhoto(ctx context.Context, carID string, file multipart.File, header *multipart.FileHeader) (string, error)
	UploadCustomerDocument(ctx context.Context, customerID string, file multipart.File, header *multipart.FileHeader) (string, error)
}

type serviceImpl struct {
	storage s3.S3
	cars    carRepo.Car
	custs   customerRepo.Customer
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(storage s3.S3, cars carRepo.Car, custs customerRepo.Customer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Media {
	return &serviceImpl{
		storage: storage,
		cars:    cars,
		custs:   custs,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

// UploadCarPhoto stores the photo in the media bucket and records its URL
// on the car.
func (s *serviceImpl) UploadCarPhoto(ctx context.Context, carID string, file multipart.File, header *multipart.FileHeader) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadCarPhoto")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(carID, carModel.FieldID, carModel.TableName)

	exist, err := s.cars.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if car exists")

		return "", fmt.Errorf("failed to check if car exists: %w", err)
	}

	if !exist {
		return "", failure.NotFound("car not found") // nolint:wrapcheck
	}

	fileName := uuid.NewString() + filepath.Ext(header.Filename)

	url, err = s.storage.UploadFile(ctx, constant.Empty, carPhotoDirectory, file, header, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload car photo")

		return "", fmt.Errorf("failed to upload car photo: %w", err)
	}

	updatedFields := map[string]any{
		carModel.FieldPhotoURL:   url,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.cars.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to record car photo url")

		return "", fmt.Errorf("failed to record car photo url: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, "car:")
	}()

	return url, nil
}

// UploadCustomerDocument stores an identity or licence document and records
// its URL on the customer.
func (s *serviceImpl) UploadCustomerDocument(ctx context.Context, customerID string, file multipart.File, header *multipart.FileHeader) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadCustomerDocument")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(customerID, customerModel.FieldID, customerModel.TableName)

	exist, err := s.custs.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return "", fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exist {
		return "", failure.NotFound("customer not found") // nolint:wrapcheck
	}

	fileName := uuid.NewString() + filepath.Ext(header.Filename)

	url, err = s.storage.UploadFile(ctx, constant.Empty, customerDocumentDirectory, file, header, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload customer document")

		return "", fmt.Errorf("failed to upload customer document: %w", err)
	}

	updatedFields := map[string]any{
		customerModel.FieldDocumentURL: url,
		constant.FieldModifiedAt:       timezone.Now(),
		constant.FieldModifiedBy:       user,
	}

	if err = s.custs.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to record customer document url")

		return "", fmt.Errorf("failed to record customer document url: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, "customer:")
	}()

	return url, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"
	"github.com/san98215/fitness-app/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnsupportedMediaType = &ValidationError{Message: "Unsupported media type"}
	ErrInvalidObjectKey     = &ValidationError{Message: "Invalid object key"}
	ErrInvalidMediaSize     = &ValidationError{Message: "Invalid media size"}
	ErrMediaNotFound        = &NotFoundError{Message: "Media not found"}
)

// mediaExtensions lists the accepted content types and the object key
// extension used for each.
var mediaExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
}

// UploadTicket is what a client needs to PUT a file straight to storage.
type UploadTicket struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ConfirmUploadInput struct {
	ObjectKey   string
	FileName    string
	ContentType string
	Size        int64
}

// MediaView is stored media with a short-lived download link.
type MediaView struct {
	domain.Media
	DownloadURL string `json:"downloadUrl"`
}

// MediaService attaches photos and videos to workouts the caller owns.
type MediaService interface {
	RequestUpload(ctx context.Context, userID, workoutID, fileName, contentType string) (*UploadTicket, error)
	ConfirmUpload(ctx context.Context, userID, workoutID string, input ConfirmUploadInput) (*domain.Media, error)
	ListMedia(ctx context.Context, userID, workoutID string) ([]MediaView, error)
	DeleteMedia(ctx context.Context, userID, workoutID, mediaID string) error
}

type mediaService struct {
	workouts WorkoutService
	media    repository.MediaRepository
	files    storage.FileStorage
	log      logrus.FieldLogger
	expiry   time.Duration
}

func NewMediaService(workouts WorkoutService, media repository.MediaRepository, files storage.FileStorage, log logrus.FieldLogger) MediaService {
	return &mediaService{
		workouts: workouts,
		media:    media,
		files:    files,
		log:      log,
		expiry:   storage.DefaultPresignedURLExpiry,
	}
}

func mediaKeyPrefix(workoutID string) string {
	return "workouts/" + workoutID + "/"
}

func (s *mediaService) RequestUpload(ctx context.Context, userID, workoutID, fileName, contentType string) (*UploadTicket, error) {
	if _, err := s.workouts.Authorize(ctx, userID, workoutID); err != nil {
		return nil, err
	}
	ext, ok := mediaExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedMediaType
	}

	key := mediaKeyPrefix(workoutID) + uuid.NewString() + ext
	url, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, s.expiry)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"workout_id": workoutID, "key": key, "file": path.Base(fileName)}).Debug("issued upload url")
	return &UploadTicket{
		UploadURL: url,
		ObjectKey: key,
		ExpiresAt: time.Now().UTC().Add(s.expiry),
	}, nil
}

func (s *mediaService) ConfirmUpload(ctx context.Context, userID, workoutID string, input ConfirmUploadInput) (*domain.Media, error) {
	if _, err := s.workouts.Authorize(ctx, userID, workoutID); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(input.ObjectKey, mediaKeyPrefix(workoutID)) || strings.Contains(input.ObjectKey, "..") {
		return nil, ErrInvalidObjectKey
	}
	if _, ok := mediaExtensions[input.ContentType]; !ok {
		return nil, ErrUnsupportedMediaType
	}
	if input.Size < 0 {
		return nil, ErrInvalidMediaSize
	}

	media := &domain.Media{
		WorkoutID:   workoutID,
		UserID:      userID,
		ObjectKey:   input.ObjectKey,
		FileName:    sanitizeText(path.Base(input.FileName)),
		ContentType: input.ContentType,
		Size:        input.Size,
		UploadedAt:  time.Now().UTC(),
	}
	if _, err := s.media.Create(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

func (s *mediaService) ListMedia(ctx context.Context, userID, workoutID string) ([]MediaView, error) {
	if _, err := s.workouts.Authorize(ctx, userID, workoutID); err != nil {
		return nil, err
	}
	media, err := s.media.ListByWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	views := make([]MediaView, 0, len(media))
	for _, m := range media {
		url, err := s.files.GeneratePresignedDownloadURL(ctx, m.ObjectKey, s.expiry)
		if err != nil {
			return nil, fmt.Errorf("media %s: %w", m.ID, err)
		}
		views = append(views, MediaView{Media: m, DownloadURL: url})
	}
	return views, nil
}

func (s *mediaService) DeleteMedia(ctx context.Context, userID, workoutID, mediaID string) error {
	if _, err := s.workouts.Authorize(ctx, userID, workoutID); err != nil {
		return err
	}
	media, err := s.media.GetByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMediaNotFound
		}
		return err
	}
	if media.WorkoutID != workoutID {
		return ErrMediaNotFound
	}

	if err := s.media.Delete(ctx, mediaID); err != nil {
		return notFoundAs(err, ErrMediaNotFound)
	}
	if err := s.files.DeleteObject(ctx, media.ObjectKey); err != nil {
		s.log.WithError(err).WithField("media_id", mediaID).Warn("failed to delete media object")
	}
	return nil
}

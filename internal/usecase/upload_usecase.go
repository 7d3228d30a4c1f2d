package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"job-board/internal/infrastructure/storage"
)

type imageStore interface {
	SaveImage(ctx context.Context, r io.Reader) (storage.Stored, error)
}

type UploadUsecase interface {
	UploadImage(ctx context.Context, r io.Reader) (string, error)
}

type Uploads struct {
	store  imageStore
	logger *log.Logger
}

var _ UploadUsecase = (*Uploads)(nil)

func NewUploadUsecase(store imageStore, logger *log.Logger) *Uploads {
	return &Uploads{store: store, logger: logger}
}

// UploadImage stores an image and returns its public URL.
func (u *Uploads) UploadImage(ctx context.Context, r io.Reader) (string, error) {
	if r == nil {
		return "", ErrInvalidInput
	}
	st, err := u.store.SaveImage(ctx, r)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrEmptyFile),
			errors.Is(err, storage.ErrTooLarge),
			errors.Is(err, storage.ErrUnsupportedType):
			return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if u.logger != nil {
			u.logger.Printf("[Uploads] save failed err=%v", err)
		}
		return "", ErrInternal
	}
	if u.logger != nil {
		u.logger.Printf("[Uploads] stored name=%s type=%s size=%d", st.Name, st.MIMEType, st.Size)
	}
	return st.URL, nil
}

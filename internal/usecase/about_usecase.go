package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
)

// AboutUseCase управляет about-сообщением сервиса.
type AboutUseCase struct {
	repo   AboutRepository
	logger logger.Logger
}

func NewAboutUC(repo AboutRepository, logger logger.Logger) *AboutUseCase {
	return &AboutUseCase{repo: repo, logger: logger}
}

func (a *AboutUseCase) GetMessage(ctx context.Context) (string, error) {
	msg, err := a.repo.Get(ctx)
	if err != nil {
		return "", e.Wrap("AboutUseCase.GetMessage", err)
	}

	return msg, nil
}

// SetMessage заменяет сообщение целиком и возвращает новое значение.
func (a *AboutUseCase) SetMessage(ctx context.Context, message string) (string, error) {
	msg, err := a.repo.Set(ctx, message)
	if err != nil {
		return "", e.Wrap("AboutUseCase.SetMessage", err)
	}

	a.logger.Infof("about message updated")
	return msg, nil
}

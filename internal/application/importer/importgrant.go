package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"floe/internal/domain/grant"
	"floe/internal/infrastructure/gtr"
	"floe/internal/shared/db"
	"floe/internal/shared/logger"
)

// ImportGrantResult reports the outcome of one import run.
type ImportGrantResult struct {
	Reference string
	Created   bool
	Updated   bool
	Message   string
}

// ImportGrantUseCase is the orchestration wrapper around the
// reconciliation engine: it searches the registry by reference, decides
// between the create and update paths, and runs the chosen path inside
// a single transaction. Unmapped-entity failures become operator-facing
// messages and one line in the side log; everything else propagates.
type ImportGrantUseCase struct {
	client          *gtr.Client
	reconciler      *Reconciler
	grantRepo       grant.Repository
	txManager       *db.TransactionManager
	unmappedLogPath string
	logger          logger.Interface
}

// NewImportGrantUseCase creates a new import use case.
func NewImportGrantUseCase(
	client *gtr.Client,
	reconciler *Reconciler,
	grantRepo grant.Repository,
	txManager *db.TransactionManager,
	unmappedLogPath string,
	logger logger.Interface,
) *ImportGrantUseCase {
	return &ImportGrantUseCase{
		client:          client,
		reconciler:      reconciler,
		grantRepo:       grantRepo,
		txManager:       txManager,
		unmappedLogPath: unmappedLogPath,
		logger:          logger,
	}
}

// Execute imports one external project reference.
func (uc *ImportGrantUseCase) Execute(ctx context.Context, reference string) (*ImportGrantResult, error) {
	uc.logger.Infow("starting grant import", "reference", reference)

	projectURI, err := uc.client.SearchProject(ctx, reference)
	if err != nil {
		if errors.Is(err, gtr.ErrProjectNotFound) {
			uc.logger.Warnw("no external project found", "reference", reference)
			return &ImportGrantResult{
				Reference: reference,
				Message:   fmt.Sprintf("no external project found for reference %s", reference),
			}, err
		}
		return nil, err
	}

	exists, err := uc.grantRepo.ExistsByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		adapter, err := gtr.NewProjectAdapter(txCtx, uc.client, uc.reconciler.tables, projectURI)
		if err != nil {
			return err
		}
		if exists {
			return uc.reconciler.Update(txCtx, adapter, reference)
		}
		return uc.reconciler.Create(txCtx, adapter, reference)
	})
	if err != nil {
		if gtr.IsUnmapped(err) {
			message := uc.reportUnmapped(reference, err)
			return &ImportGrantResult{Reference: reference, Message: message}, err
		}
		uc.logger.Errorw("grant import failed", "reference", reference, "error", err)
		return nil, err
	}

	result := &ImportGrantResult{
		Reference: reference,
		Created:   !exists,
		Updated:   exists,
	}
	if exists {
		result.Message = fmt.Sprintf("updated grant %s", reference)
	} else {
		result.Message = fmt.Sprintf("imported grant %s", reference)
	}

	uc.logger.Infow("grant import completed", "reference", reference, "created", result.Created)
	return result, nil
}

// reportUnmapped turns an unmapped-entity failure into an operator
// message and appends it to the side log file. The transaction has
// already been rolled back by the time this runs.
func (uc *ImportGrantUseCase) reportUnmapped(reference string, err error) string {
	var message string

	var orgErr *gtr.UnmappedOrganisationError
	var personErr *gtr.UnmappedPersonError
	var topicErr *gtr.UnmappedTopicError
	var subjectErr *gtr.UnmappedSubjectError
	switch {
	case errors.As(err, &orgErr):
		message = fmt.Sprintf("unmapped organisation %s for reference %s", orgErr.ResourceURI, reference)
	case errors.As(err, &personErr):
		message = fmt.Sprintf("unmapped person %s for reference %s", personErr.ResourceURI, reference)
	case errors.As(err, &topicErr):
		message = fmt.Sprintf("unmapped topic %s (%s) for reference %s", topicErr.ID, topicErr.Label, reference)
	case errors.As(err, &subjectErr):
		message = fmt.Sprintf("unmapped subject %s (%s) for reference %s", subjectErr.ID, subjectErr.Label, reference)
	default:
		message = fmt.Sprintf("unmapped entity for reference %s: %v", reference, err)
	}

	uc.logger.Warnw("unmapped entity during import", "reference", reference, "error", err)

	if uc.unmappedLogPath != "" {
		if appendErr := uc.appendToUnmappedLog(message); appendErr != nil {
			uc.logger.Errorw("failed to write unmapped log", "path", uc.unmappedLogPath, "error", appendErr)
		}
	}

	return message
}

func (uc *ImportGrantUseCase) appendToUnmappedLog(message string) error {
	file, err := os.OpenFile(uc.unmappedLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	line := fmt.Sprintf("%s %s\n", time.Now().UTC().Format(time.RFC3339), message)
	_, err = file.WriteString(line)
	return err
}

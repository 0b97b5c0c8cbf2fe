package services

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/access"
	"github.com/dmitrijs2005/filekeeper/internal/server/blob"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
)

// UploadInput carries the client-supplied fields of an upload request.
// Data is the base64-encoded payload; it stays empty for folders.
type UploadInput struct {
	Name     string
	Type     models.EntryType
	ParentID string
	IsPublic bool
	Data     string
}

// FileService orchestrates entry metadata and blob content. Every operation
// validates in a fixed order and stops on the first failure, so a failed
// step never leaves a partial mutation visible.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blob.Store
	logger      logging.Logger
}

// NewFileService constructs a FileService from its collaborators.
func NewFileService(db *sql.DB, m repomanager.RepositoryManager, blobs blob.Store, logger logging.Logger) *FileService {
	return &FileService{db: db, repomanager: m, blobs: blobs, logger: logger}
}

// Upload validates the request, persists the decoded payload (for
// non-folders) and creates the metadata record, returning the entry with its
// server-assigned id.
//
// The blob is written before the metadata insert; if the insert fails the
// blob is removed again so no metadata record can ever point at a write that
// "succeeded" without a record, and no record at a missing blob.
func (s *FileService) Upload(ctx context.Context, userID string, in UploadInput) (*models.Entry, error) {
	if userID == "" {
		return nil, common.ErrorUnauthorized
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: missing name", common.ErrorValidation)
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: missing type", common.ErrorValidation)
	}
	if in.Type != models.EntryTypeFolder && in.Data == "" {
		return nil, fmt.Errorf("%w: missing data", common.ErrorValidation)
	}

	parentID := in.ParentID
	if parentID == "" {
		parentID = models.RootParentID
	}

	repo := s.repomanager.Entries(s.db)

	if parentID != models.RootParentID {
		parent, err := repo.GetByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, fmt.Errorf("%w: parent not found", common.ErrorInvalidOperation)
			}
			s.logger.Error(ctx, "parent lookup failed", "error", err)
			return nil, common.ErrorStoreUnavailable
		}
		if !parent.IsFolder() {
			return nil, fmt.Errorf("%w: parent is not a folder", common.ErrorInvalidOperation)
		}
	}

	var localRef string
	if in.Type != models.EntryTypeFolder {
		data, err := base64.StdEncoding.DecodeString(in.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid data encoding", common.ErrorValidation)
		}

		localRef, err = s.blobs.Write(ctx, data)
		if err != nil {
			s.logger.Error(ctx, "blob write failed", "error", err)
			return nil, common.ErrorStoreUnavailable
		}
		s.logger.Debug(ctx, "blob stored", "ref", localRef, "size", len(data))
	}

	entry, err := repo.Create(ctx, &models.Entry{
		UserID:   userID,
		Name:     in.Name,
		Type:     in.Type,
		ParentID: parentID,
		IsPublic: in.IsPublic,
		LocalRef: localRef,
	})
	if err != nil {
		if localRef != "" {
			// Compensating cleanup: the reference is never reused, so a
			// failed removal only leaves an unreachable blob behind.
			if rmErr := s.blobs.Remove(ctx, localRef); rmErr != nil {
				s.logger.Warn(ctx, "orphaned blob cleanup failed", "ref", localRef, "error", rmErr)
			}
		}
		s.logger.Error(ctx, "entry creation failed", "error", err)
		return nil, common.ErrorStoreUnavailable
	}

	return entry, nil
}

// Show returns the entry by id. Anonymous callers (empty userID) see only
// public entries; a read denial is indistinguishable from a missing id.
func (s *FileService) Show(ctx context.Context, userID, id string) (*models.Entry, error) {
	return s.fetchReadable(ctx, userID, id)
}

// List returns one page (at most common.ListPageSize entries) of the
// caller's own entries under parentID, in creation order. Pages beyond the
// populated range yield an empty slice.
func (s *FileService) List(ctx context.Context, userID, parentID string, page int) ([]*models.Entry, error) {
	if userID == "" {
		return nil, common.ErrorUnauthorized
	}
	if page < 0 {
		return nil, fmt.Errorf("%w: invalid page", common.ErrorValidation)
	}
	if parentID == "" {
		parentID = models.RootParentID
	}

	repo := s.repomanager.Entries(s.db)
	result, err := repo.List(ctx, userID, parentID, common.ListPageSize, page*common.ListPageSize)
	if err != nil {
		s.logger.Error(ctx, "entry listing failed", "error", err)
		return nil, common.ErrorStoreUnavailable
	}
	return result, nil
}

// SetVisibility publishes (isPublic=true) or unpublishes an entry owned by
// userID and returns the updated record. Non-owners get unauthorized, never
// a silent not-found: ownership of a write already implies knowledge of the
// id.
func (s *FileService) SetVisibility(ctx context.Context, userID, id string, isPublic bool) (*models.Entry, error) {
	if userID == "" {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Entries(s.db)
	entry, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "entry lookup failed", "error", err)
		return nil, common.ErrorStoreUnavailable
	}

	if !access.Allowed(entry, userID, access.OpWrite) {
		return nil, common.ErrorUnauthorized
	}

	updated, err := repo.SetVisibility(ctx, id, isPublic)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "visibility update failed", "error", err)
		return nil, common.ErrorStoreUnavailable
	}
	return updated, nil
}

// FetchContent streams the blob of a readable non-folder entry. The second
// return value is the MIME type derived from the entry name's extension.
// The caller owns the returned reader and must close it.
func (s *FileService) FetchContent(ctx context.Context, userID, id string) (io.ReadCloser, string, error) {
	entry, err := s.fetchReadable(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}

	if entry.IsFolder() {
		return nil, "", fmt.Errorf("%w: a folder doesn't have content", common.ErrorInvalidOperation)
	}

	ok, err := s.blobs.Exists(ctx, entry.LocalRef)
	if err != nil {
		s.logger.Error(ctx, "blob stat failed", "ref", entry.LocalRef, "error", err)
		return nil, "", common.ErrorStoreUnavailable
	}
	if !ok {
		// Metadata and content have drifted; hide it like a missing entry.
		return nil, "", common.ErrorNotFound
	}

	rc, err := s.blobs.OpenRead(ctx, entry.LocalRef)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorNotFound
		}
		s.logger.Error(ctx, "blob open failed", "ref", entry.LocalRef, "error", err)
		return nil, "", common.ErrorStoreUnavailable
	}

	return rc, mimeTypeByName(entry.Name), nil
}

// fetchReadable loads an entry and applies the read-access decision,
// collapsing denials into common.ErrorNotFound.
func (s *FileService) fetchReadable(ctx context.Context, userID, id string) (*models.Entry, error) {
	repo := s.repomanager.Entries(s.db)
	entry, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "entry lookup failed", "error", err)
		return nil, common.ErrorStoreUnavailable
	}

	if !access.Allowed(entry, userID, access.OpRead) {
		return nil, common.ErrorNotFound
	}
	return entry, nil
}

func mimeTypeByName(name string) string {
	if mt := mime.TypeByExtension(filepath.Ext(name)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}

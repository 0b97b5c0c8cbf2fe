package entries

import (
	"context"

	"github.com/dmitrijs2005/filekeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	GetByID(ctx context.Context, id string) (*models.Entry, error)
	List(ctx context.Context, userID, parentID string, limit, offset int) ([]*models.Entry, error)
	SetVisibility(ctx context.Context, id string, isPublic bool) (*models.Entry, error)
	Count(ctx context.Context) (int64, error)
}

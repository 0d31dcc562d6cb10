package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
)

type RoleRepository struct {
	col *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(collectionRoles)}
}

// EnsureDefaults upserts every default role. Concurrent starters racing on the
// unique name index surface as duplicate-key errors, which are ignored.
func (r *RoleRepository) EnsureDefaults(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	for _, role := range domain.DefaultRoles {
		_, err := r.col.UpdateOne(ctx,
			bson.M{"name": role.String()},
			bson.M{"$setOnInsert": bson.M{"name": role.String()}},
			options.Update().SetUpsert(true),
		)
		if err != nil && !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("seed role %s: %w", role, err)
		}
	}
	return nil
}

func (r *RoleRepository) Exists(ctx context.Context, role domain.Role) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"name": role.String()}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count role: %w", err)
	}
	return n > 0, nil
}

package reviews

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
)

// Ledger tracks which entities a user has already reviewed, under
// Users/{userId}/ReviewedItems/{entityType}_{entityId}. Clients consult it
// to decide whether to show the review form; nothing server-side enforces
// single-review-per-user, and that is unchanged.
type Ledger struct {
	fs *firestore.Client
}

func NewLedger(fs *firestore.Client) *Ledger {
	return &Ledger{fs: fs}
}

func (l *Ledger) docRef(userID, entityType, entityID string) *firestore.DocumentRef {
	return l.fs.Collection("Users").Doc(userID).
		Collection("ReviewedItems").Doc(entityType + "_" + entityID)
}

// HasUserReviewed reports whether the ledger carries an entry for the
// (user, entity) pair.
func (l *Ledger) HasUserReviewed(ctx context.Context, userID, entityType, entityID string) (bool, error) {
	if userID == "" || entityType == "" || entityID == "" {
		return false, fmt.Errorf("%w: userId, entityType and entityId are required", ErrValidation)
	}
	doc, err := l.docRef(userID, entityType, entityID).Get(ctx)
	if err != nil {
		return false, nil
	}
	return doc.Exists(), nil
}

// MarkAsReviewed records that the user reviewed the entity.
func (l *Ledger) MarkAsReviewed(ctx context.Context, userID, entityType, entityID, reviewID string) error {
	if userID == "" || entityType == "" || entityID == "" {
		return fmt.Errorf("%w: userId, entityType and entityId are required", ErrValidation)
	}
	_, err := l.docRef(userID, entityType, entityID).Set(ctx, map[string]interface{}{
		"entityType": entityType,
		"entityId":   entityID,
		"reviewId":   reviewID,
		"reviewedAt": time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to mark reviewed: %w", err)
	}
	return nil
}

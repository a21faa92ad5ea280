package business

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// Collection is the canonical business collection name.
const Collection = "Businesses"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection(Collection)
}

func (r *Repo) Create(ctx context.Context, key string, b Business) (*Business, error) {
	_, err := r.col().Doc(key).Create(ctx, b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repo) Get(ctx context.Context, key string) (*Business, error) {
	doc, err := r.col().Doc(key).Get(ctx)
	if err != nil {
		return nil, err
	}
	var b Business
	if err := doc.DataTo(&b); err != nil {
		return nil, err
	}
	if b.Email == "" {
		b.Email = doc.Ref.ID
	}
	return &b, nil
}

// FindByField returns the keys of business documents whose field equals value.
func (r *Repo) FindByField(ctx context.Context, field, value string) ([]string, error) {
	it := r.col().Where(field, "==", value).Documents(ctx)
	defer it.Stop()

	var keys []string
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, doc.Ref.ID)
	}
	return keys, nil
}

func (r *Repo) SearchByNamePrefix(ctx context.Context, q string, limit int64) ([]Business, error) {
	q = strings.TrimSpace(strings.ToLower(q))

	var it *firestore.DocumentIterator
	if q == "" {
		it = r.col().OrderBy("createdAt", firestore.Desc).Limit(int(limit)).Documents(ctx)
	} else {
		// prefix search on nameLower (requires index sometimes depending on project)
		hi := q + "\uf8ff"
		it = r.col().Where("nameLower", ">=", q).
			Where("nameLower", "<", hi).
			OrderBy("nameLower", firestore.Asc).
			Limit(int(limit)).
			Documents(ctx)
	}
	defer it.Stop()

	out := []Business{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var b Business
		if err := doc.DataTo(&b); err != nil {
			continue
		}
		if b.Email == "" {
			b.Email = doc.Ref.ID
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *Repo) SetVerified(ctx context.Context, key string, verified bool) error {
	_, err := r.col().Doc(key).Set(ctx, map[string]interface{}{
		"verified":  verified,
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	return err
}

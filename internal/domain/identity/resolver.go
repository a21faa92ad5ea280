package identity

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/harsh308050/UdhyogUnity-sub001/internal/domain/business"
)

// Resolver maps loosely-typed business identifiers (email, internal id,
// occasionally a display name) to the canonical document key under which the
// business's review, product and service data lives. Identifier storage was
// never migrated, so every historical shape has to be tolerated.
type Resolver struct {
	fs  *firestore.Client
	log *zap.Logger
}

func NewResolver(fs *firestore.Client, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{fs: fs, log: log}
}

func (r *Resolver) col() *firestore.CollectionRef {
	return r.fs.Collection(business.Collection)
}

// ResolveBusinessKey resolves identifier to the canonical business document
// key. Returns "" (with nil error) when nothing matches; callers fall back
// to using the identifier verbatim, since many entities were historically
// stored directly under the raw identifier. Storage errors on any step are
// swallowed and the next step is attempted.
func (r *Resolver) ResolveBusinessKey(ctx context.Context, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", nil
	}

	// 1+2. Exact document key. The email check first is historical; the
	// read is the same either way, so one point read covers both steps.
	if doc, err := r.col().Doc(identifier).Get(ctx); err == nil && doc.Exists() {
		return doc.Ref.ID, nil
	} else if err != nil {
		r.log.Debug("identity: point read missed", zap.String("identifier", identifier), zap.Error(err))
	}

	// 3. businessId field equality.
	if key := r.findOneByField(ctx, "businessId", identifier); key != "" {
		return key, nil
	}

	// 4. businessName field equality.
	if key := r.findOneByField(ctx, "businessName", identifier); key != "" {
		return key, nil
	}

	// 5. Slow path: full scan with case-insensitive comparison. O(n) over
	// all businesses; only reached for identifiers predating the id fields.
	if key := r.scanAll(ctx, identifier); key != "" {
		return key, nil
	}

	return "", nil
}

// ResolveEmailForBusinessID is the inverse direction used by statistics:
// given a non-email identifier, read the business doc stored under it and
// return its email field. The identifier comes back unchanged on any miss.
func (r *Resolver) ResolveEmailForBusinessID(ctx context.Context, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || strings.Contains(identifier, "@") {
		return identifier, nil
	}

	doc, err := r.col().Doc(identifier).Get(ctx)
	if err != nil || !doc.Exists() {
		return identifier, nil
	}
	if email, ok := doc.Data()["email"].(string); ok && email != "" {
		return email, nil
	}
	return identifier, nil
}

// KeyPair holds both identifier forms of a business for probe fan-out.
type KeyPair struct {
	Primary   string // canonical document key (usually the email)
	Alternate string // the other form, "" when identical or unknown
}

// ResolveKeyPair produces both identifier forms for a business so callers
// can probe storage locations written under either one.
func (r *Resolver) ResolveKeyPair(ctx context.Context, identifier string) (KeyPair, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return KeyPair{}, nil
	}

	key, _ := r.ResolveBusinessKey(ctx, identifier)
	if key == "" {
		key = identifier
	}

	pair := KeyPair{Primary: key}

	doc, err := r.col().Doc(key).Get(ctx)
	if err != nil || !doc.Exists() {
		if key != identifier {
			pair.Alternate = identifier
		}
		return pair, nil
	}

	data := doc.Data()
	if email, ok := data["email"].(string); ok && email != "" && email != key {
		pair.Alternate = email
	} else if bid, ok := data["businessId"].(string); ok && bid != "" && bid != key {
		pair.Alternate = bid
	}
	return pair, nil
}

func (r *Resolver) findOneByField(ctx context.Context, field, value string) string {
	it := r.col().Where(field, "==", value).Limit(2).Documents(ctx)
	defer it.Stop()

	var keys []string
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			r.log.Warn("identity: field query failed", zap.String("field", field), zap.Error(err))
			return ""
		}
		keys = append(keys, doc.Ref.ID)
	}
	// ambiguous matches are treated as no match
	if len(keys) == 1 {
		return keys[0]
	}
	return ""
}

func (r *Resolver) scanAll(ctx context.Context, identifier string) string {
	it := r.col().Documents(ctx)
	defer it.Stop()

	want := strings.ToLower(identifier)
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			r.log.Warn("identity: full scan aborted", zap.Error(err))
			return ""
		}
		data := doc.Data()
		if name, ok := data["businessName"].(string); ok && strings.ToLower(name) == want {
			return doc.Ref.ID
		}
		if bid, ok := data["businessId"].(string); ok && strings.ToLower(bid) == want {
			return doc.Ref.ID
		}
	}
	return ""
}

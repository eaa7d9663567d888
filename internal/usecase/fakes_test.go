package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	goredis "github.com/redis/go-redis/v9"

	"docsign/internal/domain/entity"
	"docsign/internal/infrastructure/redis"
)

type fakeDocRepo struct {
	docs    map[string]*entity.Document
	updates int
}

func newFakeDocRepo(docs ...*entity.Document) *fakeDocRepo {
	repo := &fakeDocRepo{docs: make(map[string]*entity.Document)}
	for _, d := range docs {
		repo.docs[d.ID] = d
	}
	return repo
}

func (r *fakeDocRepo) Create(ctx context.Context, doc *entity.Document) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocRepo) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	return r.docs[id], nil
}

func (r *fakeDocRepo) Update(ctx context.Context, doc *entity.Document) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return errors.New("document missing")
	}
	r.docs[doc.ID] = doc
	r.updates++
	return nil
}

func (r *fakeDocRepo) Delete(ctx context.Context, id string) error {
	delete(r.docs, id)
	return nil
}

func (r *fakeDocRepo) IncrementViewCount(ctx context.Context, id string) error {
	if doc, ok := r.docs[id]; ok {
		doc.ViewCount++
	}
	return nil
}

type fakeSigRepo struct {
	sigs []entity.Signature
}

func (r *fakeSigRepo) Save(ctx context.Context, sig *entity.Signature) error {
	r.sigs = append(r.sigs, *sig)
	return nil
}

func (r *fakeSigRepo) ListByDocument(ctx context.Context, documentID string) ([]entity.Signature, error) {
	var out []entity.Signature
	for _, s := range r.sigs {
		if s.DocumentID == documentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSigRepo) ExistsForBlock(ctx context.Context, documentID, blockID string) (bool, error) {
	for _, s := range r.sigs {
		if s.DocumentID == documentID && s.SignerID == blockID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSigRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	kept := r.sigs[:0]
	for _, s := range r.sigs {
		if s.DocumentID != documentID {
			kept = append(kept, s)
		}
	}
	r.sigs = kept
	return nil
}

type fakeOpLogRepo struct {
	entries []entity.OperationLog
}

func (r *fakeOpLogRepo) Save(ctx context.Context, log *entity.OperationLog) error {
	r.entries = append(r.entries, *log)
	return nil
}

func (r *fakeOpLogRepo) List(ctx context.Context, limit, offset int) ([]entity.OperationLog, error) {
	return r.entries, nil
}

func (r *fakeOpLogRepo) Search(ctx context.Context, query string, limit int) ([]entity.OperationLog, error) {
	var out []entity.OperationLog
	for _, e := range r.entries {
		if e.DocumentID == query || e.Operation == query {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeStorage serves files from an in-memory map of name to path.
type fakeStorage struct {
	basePath string
	files    map[string]string
	saved    []string
}

func (s *fakeStorage) Save(documentID, contentType string, size int64, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s_upload.pdf", documentID)
	path := s.basePath + "/" + name
	s.files[name] = path
	s.saved = append(s.saved, name)
	return path, nil
}

func (s *fakeStorage) Resolve(name string) (string, error) {
	if path, ok := s.files[baseName(name)]; ok {
		return path, nil
	}
	return "", errors.New("stored file not found")
}

func (s *fakeStorage) Delete(path string) error { return nil }

func (s *fakeStorage) Purge(documentID string) error { return nil }

func (s *fakeStorage) BasePath() string { return s.basePath }

func baseName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[i+1:]
		}
	}
	return name
}

type stubRenderer struct {
	pdf []byte
	err error
}

func (r *stubRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	return r.pdf, r.err
}

type sequenceIDs struct {
	n int
}

func (g *sequenceIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// unreachableRedis returns a client whose operations fail fast. Cache writes
// are best effort, so the flows under test must still succeed.
func unreachableRedis() *redis.RedisClient {
	return &redis.RedisClient{
		Client: goredis.NewClient(&goredis.Options{
			Addr:            "127.0.0.1:1",
			DialTimeout:     1,
			MaxRetries:      -1,
			PoolTimeout:     1,
			MinIdleConns:    0,
			ConnMaxIdleTime: 1,
		}),
	}
}

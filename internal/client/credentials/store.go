package credentials

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mmadmin/internal/client/securestore"
	"github.com/dmitrijs2005/mmadmin/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Fatal write errors. The wording is fixed and carries no underlying detail
// so that storage failures never leak credential material into errors or
// logs.
var (
	ErrSaveToken     = errors.New("failed to save authentication token")
	ErrSaveServerURL = errors.New("failed to save server URL")
	ErrSaveAuthData  = errors.New("failed to save authentication data")
)

// Store is the credential repository over the secure key-value store.
//
// Read accessors degrade to "" (or nil for GetAuthData) on any storage
// error: a failed read is indistinguishable from an absent key. Writes to
// the primary fields (token, server URL) fail loudly with one of the fixed
// errors above; writes to the enrichment fields and all deletes are
// best-effort.
type Store struct {
	kv  securestore.Store
	log logging.Logger
}

func NewStore(kv securestore.Store, log logging.Logger) *Store {
	return &Store{kv: kv, log: log}
}

func (s *Store) SaveToken(ctx context.Context, token string) error {
	if err := s.kv.Set(ctx, keyToken, token); err != nil {
		s.log.Error(ctx, "error saving token")
		return ErrSaveToken
	}
	return nil
}

func (s *Store) GetToken(ctx context.Context) string {
	v, err := s.kv.Get(ctx, keyToken)
	if err != nil {
		s.log.Error(ctx, "error retrieving token")
		return ""
	}
	return v
}

func (s *Store) RemoveToken(ctx context.Context) {
	if err := s.kv.Delete(ctx, keyToken); err != nil {
		s.log.Error(ctx, "error removing token")
	}
}

func (s *Store) SaveServerURL(ctx context.Context, serverURL string) error {
	if err := s.kv.Set(ctx, keyServerURL, serverURL); err != nil {
		s.log.Error(ctx, "error saving server URL")
		return ErrSaveServerURL
	}
	return nil
}

func (s *Store) GetServerURL(ctx context.Context) string {
	v, err := s.kv.Get(ctx, keyServerURL)
	if err != nil {
		s.log.Error(ctx, "error retrieving server URL")
		return ""
	}
	return v
}

func (s *Store) RemoveServerURL(ctx context.Context) {
	if err := s.kv.Delete(ctx, keyServerURL); err != nil {
		s.log.Error(ctx, "error removing server URL")
	}
}

func (s *Store) SaveUserID(ctx context.Context, userID string) {
	if err := s.kv.Set(ctx, keyUserID, userID); err != nil {
		s.log.Error(ctx, "error saving user ID")
	}
}

func (s *Store) GetUserID(ctx context.Context) string {
	v, err := s.kv.Get(ctx, keyUserID)
	if err != nil {
		s.log.Error(ctx, "error retrieving user ID")
		return ""
	}
	return v
}

func (s *Store) SaveUsername(ctx context.Context, username string) {
	if err := s.kv.Set(ctx, keyUsername, username); err != nil {
		s.log.Error(ctx, "error saving username")
	}
}

func (s *Store) GetUsername(ctx context.Context) string {
	v, err := s.kv.Get(ctx, keyUsername)
	if err != nil {
		s.log.Error(ctx, "error retrieving username")
		return ""
	}
	return v
}

// SaveAuthData writes the whole record. The primary fields are always
// written; the optional fields only when set. Writes are issued
// concurrently, and if any of them fails the call fails with
// ErrSaveAuthData. Already-completed writes are not rolled back, so the
// store may be left partially updated.
func (s *Store) SaveAuthData(ctx context.Context, rec AuthRecord) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.kv.Set(gctx, keyToken, rec.Token) })
	g.Go(func() error { return s.kv.Set(gctx, keyServerURL, rec.ServerURL) })
	if rec.UserID != "" {
		g.Go(func() error { return s.kv.Set(gctx, keyUserID, rec.UserID) })
	}
	if rec.Username != "" {
		g.Go(func() error { return s.kv.Set(gctx, keyUsername, rec.Username) })
	}

	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "error saving auth data")
		return ErrSaveAuthData
	}
	return nil
}

// GetAuthData reads all four fields concurrently. It returns nil when the
// token or server URL is missing, and also when any underlying read fails.
func (s *Store) GetAuthData(ctx context.Context) *AuthRecord {
	var rec AuthRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { rec.Token, err = s.kv.Get(gctx, keyToken); return })
	g.Go(func() (err error) { rec.ServerURL, err = s.kv.Get(gctx, keyServerURL); return })
	g.Go(func() (err error) { rec.UserID, err = s.kv.Get(gctx, keyUserID); return })
	g.Go(func() (err error) { rec.Username, err = s.kv.Get(gctx, keyUsername); return })

	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "error retrieving auth data")
		return nil
	}

	if !rec.Present() {
		return nil
	}
	return &rec
}

// ClearAll deletes all four keys concurrently, best-effort: failures are
// logged and swallowed so logout never blocks on a broken store.
func (s *Store) ClearAll(ctx context.Context) {
	var g errgroup.Group
	for _, key := range []string{keyToken, keyServerURL, keyUserID, keyUsername} {
		key := key
		g.Go(func() error { return s.kv.Delete(ctx, key) })
	}
	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "error clearing auth data")
	}
}

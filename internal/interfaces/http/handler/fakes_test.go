package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hrm/backend/internal/domain/audit"
	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/infrastructure/auth"
	"github.com/hrm/backend/internal/infrastructure/config"
	"github.com/hrm/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSessionService() *auth.SessionService {
	return auth.NewSessionService(config.SessionConfig{
		Secret:     "0123456789abcdef0123456789abcdef",
		Expiration: time.Hour,
		Issuer:     "hrm-backend",
	})
}

func newCookieWriter() *auth.CookieWriter {
	return auth.NewCookieWriter(config.CookieConfig{Name: "hrm_session", Path: "/"})
}

// sessionRouter builds a router group that behaves as if the auth
// middleware already resolved the given session. A nil session leaves
// the request unauthenticated.
func sessionRouter(session *auth.Session) (*gin.Engine, *gin.RouterGroup) {
	router := gin.New()
	rg := router.Group("/api/v1", func(c *gin.Context) {
		if session != nil {
			middleware.SetSession(c, session)
		}
	})
	return router, rg
}

func adminSession(memberID uuid.UUID) *auth.Session {
	return &auth.Session{
		UserID:   uuid.New(),
		MemberID: memberID,
		Email:    "admin@example.com",
		Name:     "管理 太郎",
		Role:     identity.RoleAdmin,
		Company:  identity.CompanyAltius,
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func performRaw(router *gin.Engine, method, path string, payload []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func testMember(t *testing.T, name string) *identity.Member {
	t.Helper()
	member, err := identity.NewMember(name, identity.CompanyAltius, identity.EmploymentEmployee,
		identity.SalaryMonthly, decimal.NewFromInt(400000), valueobject.NewDate(2024, time.April, 1))
	require.NoError(t, err)
	return member
}

type memoryMemberRepo struct {
	members map[uuid.UUID]*identity.Member
}

func newMemoryMemberRepo() *memoryMemberRepo {
	return &memoryMemberRepo{members: make(map[uuid.UUID]*identity.Member)}
}

func (r *memoryMemberRepo) Create(_ context.Context, member *identity.Member) error {
	r.members[member.ID] = member
	return nil
}

func (r *memoryMemberRepo) Update(_ context.Context, member *identity.Member) error {
	if _, ok := r.members[member.ID]; !ok {
		return shared.ErrNotFound
	}
	r.members[member.ID] = member
	return nil
}

func (r *memoryMemberRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return member, nil
}

func (r *memoryMemberRepo) FindAll(_ context.Context, filter identity.MemberFilter) ([]*identity.Member, int64, error) {
	var out []*identity.Member
	for _, m := range r.members {
		if !filter.IncludeRetired && !m.IsActive() {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *memoryMemberRepo) FindActive(_ context.Context) ([]*identity.Member, error) {
	var out []*identity.Member
	for _, m := range r.members {
		if m.IsActive() {
			out = append(out, m)
		}
	}
	return out, nil
}

type memoryAccountRepo struct {
	accounts map[uuid.UUID]*identity.UserAccount
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{accounts: make(map[uuid.UUID]*identity.UserAccount)}
}

func (r *memoryAccountRepo) Create(_ context.Context, account *identity.UserAccount) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *memoryAccountRepo) Update(_ context.Context, account *identity.UserAccount) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return shared.ErrNotFound
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *memoryAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.UserAccount, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return account, nil
}

func (r *memoryAccountRepo) FindByEmail(_ context.Context, email string) (*identity.UserAccount, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryAccountRepo) FindByMemberID(_ context.Context, memberID uuid.UUID) (*identity.UserAccount, error) {
	for _, a := range r.accounts {
		if a.MemberID == memberID {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryAccountRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memoryAuditRepo struct {
	entries []*audit.AuditLog
}

func (r *memoryAuditRepo) Append(_ context.Context, entry *audit.AuditLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memoryAuditRepo) FindAll(_ context.Context, _ audit.Filter) ([]*audit.AuditLog, int64, error) {
	out := make([]*audit.AuditLog, len(r.entries))
	copy(out, r.entries)
	return out, int64(len(out)), nil
}

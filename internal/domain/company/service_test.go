package company

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/core/apperror"
	appctx "bahikhata/internal/core/context"
	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/audit"
	"bahikhata/internal/domain/auth"
	"bahikhata/internal/domain/masters/ledger"
	"bahikhata/internal/domain/masters/ledgergroup"
)

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockCompanyRepo struct {
	created *Company
}

func (m *mockCompanyRepo) Create(ctx context.Context, c *Company) error {
	m.created = c
	return nil
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, companyID id.ID) (*Company, error) {
	if m.created != nil && m.created.ID == companyID {
		return m.created, nil
	}
	return nil, nil
}

type mockUserRepo struct {
	users map[string]*auth.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*auth.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *auth.User) error {
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	for _, u := range m.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return m.users[email], nil
}

func (m *mockUserRepo) Exists(ctx context.Context, email string) (bool, error) {
	_, ok := m.users[email]
	return ok, nil
}

type mockGroupRepo struct {
	groups []*ledgergroup.LedgerGroup
}

func (m *mockGroupRepo) Create(ctx context.Context, g *ledgergroup.LedgerGroup) error {
	m.groups = append(m.groups, g)
	return nil
}

func (m *mockGroupRepo) Update(ctx context.Context, g *ledgergroup.LedgerGroup) error { return nil }
func (m *mockGroupRepo) Delete(ctx context.Context, companyID, groupID id.ID) error   { return nil }

func (m *mockGroupRepo) GetByID(ctx context.Context, companyID, groupID id.ID) (*ledgergroup.LedgerGroup, error) {
	return nil, nil
}

func (m *mockGroupRepo) GetByName(ctx context.Context, companyID id.ID, name string) (*ledgergroup.LedgerGroup, error) {
	for _, g := range m.groups {
		if g.Name == name {
			return g, nil
		}
	}
	return nil, nil
}

func (m *mockGroupRepo) List(ctx context.Context, companyID id.ID) ([]*ledgergroup.LedgerGroup, error) {
	return m.groups, nil
}

func (m *mockGroupRepo) HasLedgers(ctx context.Context, companyID, groupID id.ID) (bool, error) {
	return false, nil
}

func (m *mockGroupRepo) HasChildren(ctx context.Context, companyID, groupID id.ID) (bool, error) {
	return false, nil
}

type mockLedgerRepo struct {
	ledgers []*ledger.Ledger
}

func (m *mockLedgerRepo) Create(ctx context.Context, l *ledger.Ledger) error {
	m.ledgers = append(m.ledgers, l)
	return nil
}

func (m *mockLedgerRepo) Update(ctx context.Context, l *ledger.Ledger) error          { return nil }
func (m *mockLedgerRepo) Delete(ctx context.Context, companyID, ledgerID id.ID) error { return nil }

func (m *mockLedgerRepo) GetByID(ctx context.Context, companyID, ledgerID id.ID) (*ledger.Ledger, error) {
	return nil, nil
}

func (m *mockLedgerRepo) GetByName(ctx context.Context, companyID id.ID, name string) (*ledger.Ledger, error) {
	for _, l := range m.ledgers {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, nil
}

func (m *mockLedgerRepo) GetByGroupName(ctx context.Context, companyID id.ID, groupName string) (*ledger.Ledger, error) {
	return nil, nil
}

func (m *mockLedgerRepo) List(ctx context.Context, companyID id.ID, filter ledger.Filter) ([]*ledger.Ledger, error) {
	return m.ledgers, nil
}

func (m *mockLedgerRepo) IsReferenced(ctx context.Context, companyID, ledgerID id.ID) (bool, error) {
	return false, nil
}

func newTestService() (*Service, *mockCompanyRepo, *mockUserRepo, *mockGroupRepo, *mockLedgerRepo) {
	companies := &mockCompanyRepo{}
	users := newMockUserRepo()
	groups := &mockGroupRepo{}
	ledgers := &mockLedgerRepo{}
	svc := NewService(companies, users, groups, ledgers, &mockTxManager{}, audit.Nop{})
	return svc, companies, users, groups, ledgers
}

func TestCreateCompanyAccount(t *testing.T) {
	svc, companies, users, groups, ledgers := newTestService()

	companyID, err := svc.CreateCompanyAccount(context.Background(), SignupInput{
		CompanyName: "Mehta Textiles",
		FullName:    "Kiran Mehta",
		Email:       "kiran@mehtatextiles.in",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)
	require.False(t, id.IsNil(companyID))

	require.NotNil(t, companies.created)
	assert.Equal(t, companyID, companies.created.ID)

	owner := users.users["kiran@mehtatextiles.in"]
	require.NotNil(t, owner)
	assert.Equal(t, companyID, owner.CompanyID)
	assert.Equal(t, auth.RoleOwner, owner.Role)
	assert.NotEqual(t, "s3cret-pass", owner.PasswordHash)

	// Full seed set: 9 system groups, 7 ledgers
	require.Len(t, groups.groups, 9)
	for _, g := range groups.groups {
		assert.True(t, g.IsSystem, "group %s must be a system group", g.Name)
		assert.Equal(t, companyID, g.CompanyID)
	}

	require.Len(t, ledgers.ledgers, 7)
	for _, name := range []string{"Cash", "Bank", "Sales", "Purchase", "GST", "Freight Charges", "Discount"} {
		l, err := ledgers.GetByName(context.Background(), companyID, name)
		require.NoError(t, err)
		require.NotNil(t, l, "seed ledger %s missing", name)
	}

	// Trade account groups the posting flow resolves by name
	for _, name := range []string{"Purchase Account", "Sales Account", "Duties & Taxes"} {
		g, err := groups.GetByName(context.Background(), companyID, name)
		require.NoError(t, err)
		require.NotNil(t, g, "seed group %s missing", name)
	}
}

// capturingAudit records the contexts it was invoked with so tests can
// check what the audit writer would attribute entries to.
type capturingAudit struct {
	audit.Nop
	ctxs   []context.Context
	tables []string
}

func (m *capturingAudit) LogInsert(ctx context.Context, tableName string, recordID id.ID, newState any) error {
	m.ctxs = append(m.ctxs, ctx)
	m.tables = append(m.tables, tableName)
	return nil
}

// Signup is unauthenticated, so the audit writer cannot pull the
// company from a token. The provisioning context must carry the new
// company and owner or the row is attributed to a nil company.
func TestCreateCompanyAccount_AuditAttributedToNewCompany(t *testing.T) {
	rec := &capturingAudit{}
	svc := NewService(&mockCompanyRepo{}, newMockUserRepo(), &mockGroupRepo{}, &mockLedgerRepo{}, &mockTxManager{}, rec)

	companyID, err := svc.CreateCompanyAccount(context.Background(), SignupInput{
		CompanyName: "Mehta Textiles",
		FullName:    "Kiran Mehta",
		Email:       "kiran@mehtatextiles.in",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)

	require.Len(t, rec.ctxs, 1)
	assert.Equal(t, "companies", rec.tables[0])

	user := appctx.GetUser(rec.ctxs[0])
	require.NotNil(t, user)
	assert.Equal(t, companyID, user.CompanyID)
	assert.False(t, id.IsNil(user.UserID))
	assert.Equal(t, "kiran@mehtatextiles.in", user.Email)
}

func TestCreateCompanyAccount_DuplicateEmail(t *testing.T) {
	svc, _, users, _, _ := newTestService()
	users.users["taken@example.com"] = auth.NewUser(id.New(), "taken@example.com", "X", auth.RoleOwner, "h")

	_, err := svc.CreateCompanyAccount(context.Background(), SignupInput{
		CompanyName: "Another Co",
		Email:       "taken@example.com",
		Password:    "s3cret-pass",
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestCreateCompanyAccount_Validation(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateCompanyAccount(ctx, SignupInput{Email: "a@b.co", Password: "longenough"})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.CreateCompanyAccount(ctx, SignupInput{CompanyName: "Co", Email: "a@b.co", Password: "short"})
	assert.True(t, apperror.IsValidation(err))
}

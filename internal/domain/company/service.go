package company

import (
	"context"
	"fmt"

	"bahikhata/internal/core/apperror"
	appctx "bahikhata/internal/core/context"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/tx"
	"bahikhata/internal/domain/audit"
	"bahikhata/internal/domain/auth"
	"bahikhata/internal/domain/masters/ledger"
	"bahikhata/internal/domain/masters/ledgergroup"
)

// seedGroup is one system ledger group created at provisioning.
type seedGroup struct {
	name   string
	nature ledgergroup.Nature
}

// seedLedger is one system ledger, keyed to its group by name.
type seedLedger struct {
	name  string
	group string
}

// The seed chart of accounts. Posting resolves the trade, tax,
// freight and discount ledgers out of this set by name, so renaming
// entries here changes posting behavior.
var (
	seedGroups = []seedGroup{
		{"Sundry Debtors", ledgergroup.NatureAsset},
		{"Sundry Creditors", ledgergroup.NatureLiability},
		{"Sales Account", ledgergroup.NatureIncome},
		{"Purchase Account", ledgergroup.NatureExpense},
		{"Cash", ledgergroup.NatureAsset},
		{"Bank", ledgergroup.NatureAsset},
		{"Duties & Taxes", ledgergroup.NatureLiability},
		{"Direct Expenses", ledgergroup.NatureExpense},
		{"Capital Account", ledgergroup.NatureLiability},
	}

	seedLedgers = []seedLedger{
		{"Cash", "Cash"},
		{"Bank", "Bank"},
		{"Sales", "Sales Account"},
		{"Purchase", "Purchase Account"},
		{"GST", "Duties & Taxes"},
		{"Freight Charges", "Direct Expenses"},
		{"Discount", "Direct Expenses"},
	}
)

// Service provisions new companies.
type Service struct {
	repo      Repository
	users     auth.UserRepository
	groups    ledgergroup.Repository
	ledgers   ledger.Repository
	txManager tx.Manager
	audit     audit.Recorder
}

// NewService creates a provisioning service.
func NewService(
	repo Repository,
	users auth.UserRepository,
	groups ledgergroup.Repository,
	ledgers ledger.Repository,
	txManager tx.Manager,
	auditRec audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		groups:    groups,
		ledgers:   ledgers,
		txManager: txManager,
		audit:     auditRec,
	}
}

// CreateCompanyAccount provisions a company in one transaction: the
// company row, the owner user with a hashed password, and the seed
// system groups and ledgers. Returns the new company id.
func (s *Service) CreateCompanyAccount(ctx context.Context, in SignupInput) (id.ID, error) {
	c := New(in.CompanyName)
	if err := c.Validate(ctx); err != nil {
		return id.Nil(), err
	}
	if in.Email == "" {
		return id.Nil(), apperror.NewValidation("email is required").WithDetail("field", "email")
	}

	passwordHash, err := auth.HashPassword(in.Password)
	if err != nil {
		return id.Nil(), err
	}

	owner := auth.NewUser(c.ID, in.Email, in.FullName, auth.RoleOwner, passwordHash)
	if err := owner.Validate(ctx); err != nil {
		return id.Nil(), err
	}

	// Signup carries no token, so the audit trail attributes the
	// provisioning to the owner being created.
	ctx = appctx.WithUser(ctx, &appctx.UserContext{
		UserID:    owner.ID,
		CompanyID: c.ID,
		Email:     owner.Email,
		Role:      owner.Role,
	})

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.users.Exists(ctx, in.Email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("user", "email", in.Email)
		}

		if err := s.repo.Create(ctx, c); err != nil {
			return fmt.Errorf("create company: %w", err)
		}
		if err := s.users.Create(ctx, owner); err != nil {
			return fmt.Errorf("create owner user: %w", err)
		}
		if err := s.seed(ctx, c.ID); err != nil {
			return err
		}

		entry := map[string]any{"company": c, "owner_user_id": owner.ID}
		if err := s.audit.LogInsert(ctx, "companies", c.ID, entry); err != nil {
			return fmt.Errorf("write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return id.Nil(), err
	}

	return c.ID, nil
}

// seed creates the system chart of accounts.
func (s *Service) seed(ctx context.Context, companyID id.ID) error {
	groupIDs := make(map[string]id.ID, len(seedGroups))

	for _, sg := range seedGroups {
		g := ledgergroup.New(companyID, sg.name, sg.nature)
		g.IsSystem = true
		if err := s.groups.Create(ctx, g); err != nil {
			return fmt.Errorf("seed group %q: %w", sg.name, err)
		}
		groupIDs[sg.name] = g.ID
	}

	for _, sl := range seedLedgers {
		groupID, ok := groupIDs[sl.group]
		if !ok {
			return fmt.Errorf("seed ledger %q: unknown group %q", sl.name, sl.group)
		}
		l := ledger.New(companyID, groupID, sl.name)
		if err := s.ledgers.Create(ctx, l); err != nil {
			return fmt.Errorf("seed ledger %q: %w", sl.name, err)
		}
	}

	return nil
}

// GetByID returns one company.
func (s *Service) GetByID(ctx context.Context, companyID id.ID) (*Company, error) {
	c, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NewNotFound("company", companyID.String())
	}
	return c, nil
}

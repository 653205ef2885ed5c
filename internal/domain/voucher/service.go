package voucher

import (
	"context"
	"fmt"
	"time"

	"bahikhata/internal/core/apperror"
	appctx "bahikhata/internal/core/context"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/tx"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/audit"
	"bahikhata/internal/domain/masters/ledger"
	"bahikhata/internal/domain/masters/stockitem"
	"bahikhata/internal/domain/posting"
	"bahikhata/internal/domain/registers/stock"
	"bahikhata/pkg/logger"
)

const tableName = "vouchers"

// timeNow is swapped out in tests.
var timeNow = time.Now

// System chart-of-accounts lookups. Seeded at company provisioning;
// a missing one is a setup problem, not a bug.
const (
	groupPurchaseAccount = "Purchase Account"
	groupSalesAccount    = "Sales Account"
	groupDutiesAndTaxes  = "Duties & Taxes"
	ledgerFreightCharges = "Freight Charges"
	ledgerDiscount       = "Discount"
)

// Sequencer allocates voucher numbers. Satisfied by numerator.Service.
type Sequencer interface {
	Next(ctx context.Context, companyID id.ID, voucherType string) (int64, error)
	Peek(ctx context.Context, companyID id.ID, voucherType string) (int64, error)
}

// Service orchestrates voucher posting.
type Service struct {
	repo      Repository
	ledgers   ledger.Repository
	items     stockitem.Repository
	register  *stock.Service
	policy    *stock.OversellPolicy
	sequencer Sequencer
	txManager tx.Manager
	audit     audit.Recorder
}

// NewService creates a voucher service.
func NewService(
	repo Repository,
	ledgers ledger.Repository,
	items stockitem.Repository,
	register *stock.Service,
	policy *stock.OversellPolicy,
	sequencer Sequencer,
	txManager tx.Manager,
	auditRec audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		ledgers:   ledgers,
		items:     items,
		register:  register,
		policy:    policy,
		sequencer: sequencer,
		txManager: txManager,
		audit:     auditRec,
	}
}

// Post validates the input, applies the posting rules and persists the
// voucher, its items, journal entries, stock movements and audit row in
// one atomic commit. The voucher number is allocated inside the same
// transaction, so a failed posting never consumes a number.
func (s *Service) Post(ctx context.Context, companyID id.ID, in PostInput) (*Voucher, error) {
	if id.IsNil(companyID) {
		return nil, apperror.NewValidation("company is required")
	}
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	var posted *Voucher

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Referenced masters are re-validated inside the transaction:
		// client-cached ids may be stale or belong to another company.
		accounts, engineInput, err := s.resolve(ctx, companyID, in)
		if err != nil {
			return err
		}

		if in.Type == TypeSales {
			if err := s.checkOversell(ctx, companyID, in.Lines); err != nil {
				return err
			}
		}

		result, err := posting.Build(engineInput, accounts)
		if err != nil {
			return err
		}

		number, err := s.sequencer.Next(ctx, companyID, string(in.Type))
		if err != nil {
			return fmt.Errorf("allocate voucher number: %w", err)
		}

		v := s.assemble(ctx, companyID, number, in, result)

		if err := s.repo.Create(ctx, v); err != nil {
			return fmt.Errorf("create voucher: %w", err)
		}
		if len(v.Items) > 0 {
			if err := s.repo.CreateItems(ctx, v.Items); err != nil {
				return fmt.Errorf("create voucher items: %w", err)
			}
		}
		if err := s.repo.CreateEntries(ctx, v.Entries); err != nil {
			return fmt.Errorf("create journal entries: %w", err)
		}

		movements := make([]stock.Movement, 0, len(result.Movements))
		for _, m := range result.Movements {
			movements = append(movements, stock.Movement{
				ID:          id.New(),
				CompanyID:   companyID,
				VoucherID:   v.ID,
				StockItemID: m.StockItemID,
				GodownID:    m.GodownID,
				Shade:       m.Shade,
				Lot:         m.Lot,
				Quantity:    m.Quantity,
				Type:        stock.MovementType(m.Direction),
				CreatedAt:   v.CreatedAt,
			})
		}
		if err := s.register.RecordMovements(ctx, movements); err != nil {
			return err
		}

		if err := s.audit.LogInsert(ctx, tableName, v.ID, v); err != nil {
			return fmt.Errorf("write audit log: %w", err)
		}

		posted = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "voucher posted",
		"id", posted.ID,
		"type", string(posted.Type),
		"number", posted.Number,
		"grand_total", posted.GrandTotal.String(),
	)

	return posted, nil
}

// resolve looks up every referenced ledger and item and builds the
// engine input with GST rates defaulted from the item master.
func (s *Service) resolve(ctx context.Context, companyID id.ID, in PostInput) (posting.Accounts, posting.Input, error) {
	var acc posting.Accounts

	party, err := s.ledgers.GetByID(ctx, companyID, in.PartyLedgerID)
	if err != nil {
		return acc, nil, err
	}
	if party == nil {
		return acc, nil, apperror.NewReferential("party ledger", in.PartyLedgerID.String())
	}
	acc.Party = party.ID

	if !in.Type.IsInventory() {
		account, err := s.ledgers.GetByID(ctx, companyID, *in.AccountLedgerID)
		if err != nil {
			return acc, nil, err
		}
		if account == nil {
			return acc, nil, apperror.NewReferential("account ledger", in.AccountLedgerID.String())
		}
		acc.CashOrBank = account.ID

		return acc, posting.AccountingInput{Type: in.Type, Amount: in.Amount}, nil
	}

	tradeGroup := groupPurchaseAccount
	if in.Type == TypeSales {
		tradeGroup = groupSalesAccount
	}
	trade, err := s.ledgers.GetByGroupName(ctx, companyID, tradeGroup)
	if err != nil {
		return acc, nil, err
	}
	if trade == nil {
		return acc, nil, apperror.NewConfiguration(fmt.Sprintf("no ledger under the %q group", tradeGroup))
	}
	acc.TradeAccount = trade.ID

	duties, err := s.ledgers.GetByGroupName(ctx, companyID, groupDutiesAndTaxes)
	if err != nil {
		return acc, nil, err
	}
	if duties == nil {
		return acc, nil, apperror.NewConfiguration(fmt.Sprintf("no ledger under the %q group", groupDutiesAndTaxes))
	}
	acc.DutiesAndTaxes = duties.ID

	// Freight/Discount ledgers are optional; the engine only demands
	// them when the matching amount is non-zero.
	if !in.Freight.IsZero() {
		freight, err := s.ledgers.GetByName(ctx, companyID, ledgerFreightCharges)
		if err != nil {
			return acc, nil, err
		}
		if freight != nil {
			acc.Freight = &freight.ID
		}
	}
	if !in.Discount.IsZero() {
		discount, err := s.ledgers.GetByName(ctx, companyID, ledgerDiscount)
		if err != nil {
			return acc, nil, err
		}
		if discount != nil {
			acc.Discount = &discount.ID
		}
	}

	itemIDs := make([]id.ID, 0, len(in.Lines))
	for _, ln := range in.Lines {
		itemIDs = append(itemIDs, ln.StockItemID)
	}
	masters, err := s.items.GetByIDs(ctx, companyID, itemIDs)
	if err != nil {
		return acc, nil, err
	}

	lines := make([]posting.Line, 0, len(in.Lines))
	for i, ln := range in.Lines {
		item, ok := masters[ln.StockItemID]
		if !ok {
			return acc, nil, apperror.NewReferential("stock item", ln.StockItemID.String()).
				WithDetail("line", i)
		}

		gstRate := item.GSTRate
		if ln.GSTRate != nil {
			gstRate = *ln.GSTRate
		}

		lines = append(lines, posting.Line{
			StockItemID: ln.StockItemID,
			Shade:       ln.Shade,
			Lot:         ln.Lot,
			Quantity:    ln.Quantity,
			Rate:        ln.Rate,
			GSTRate:     gstRate,
			GodownID:    ln.GodownID,
		})
	}

	return acc, posting.InventoryInput{
		Type:     in.Type,
		Lines:    lines,
		Discount: in.Discount,
		Freight:  in.Freight,
	}, nil
}

// checkOversell evaluates the configured policy per outgoing line,
// aggregating quantities of the same item across lines.
func (s *Service) checkOversell(ctx context.Context, companyID id.ID, lines []LineInput) error {
	if s.policy == nil || s.policy.Mode() == stock.ModeAllow {
		return nil
	}

	requested := make(map[id.ID]struct {
		qty  types.Quantity
		line LineInput
	})
	for _, ln := range lines {
		entry := requested[ln.StockItemID]
		entry.qty += ln.Quantity
		entry.line = ln
		requested[ln.StockItemID] = entry
	}

	for itemID, entry := range requested {
		available, err := s.register.CurrentQuantity(ctx, companyID, itemID, stock.Filter{})
		if err != nil {
			return err
		}

		item, err := s.items.GetByID(ctx, companyID, itemID)
		if err != nil {
			return err
		}
		name := itemID.String()
		if item != nil {
			name = item.Name
		}

		if err := s.policy.Check(ctx, name, entry.qty, available); err != nil {
			return err
		}
	}
	return nil
}

// assemble builds the persistable voucher from the engine result.
func (s *Service) assemble(ctx context.Context, companyID id.ID, number int64, in PostInput, result *posting.Result) *Voucher {
	v := &Voucher{
		ID:              id.New(),
		CompanyID:       companyID,
		Type:            in.Type,
		Number:          number,
		Date:            in.Date,
		PartyLedgerID:   in.PartyLedgerID,
		AccountLedgerID: in.AccountLedgerID,
		SubTotal:        result.Totals.SubTotal,
		GSTTotal:        result.Totals.GSTTotal,
		Discount:        result.Totals.Discount,
		Freight:         result.Totals.Freight,
		GrandTotal:      result.Totals.GrandTotal,
		Narration:       in.Narration,
		CreatedAt:       timeNow().UTC(),
	}
	if user := appctx.GetUser(ctx); user != nil && !id.IsNil(user.UserID) {
		uid := user.UserID
		v.CreatedBy = &uid
	}

	for _, ln := range result.Lines {
		v.Items = append(v.Items, Item{
			ID:          id.New(),
			CompanyID:   companyID,
			VoucherID:   v.ID,
			StockItemID: ln.StockItemID,
			GodownID:    ln.GodownID,
			Shade:       ln.Shade,
			Lot:         ln.Lot,
			Quantity:    ln.Quantity,
			Rate:        ln.Rate,
			Amount:      ln.Amount,
			GSTAmount:   ln.GSTAmount,
		})
	}
	for _, jl := range result.Journal {
		v.Entries = append(v.Entries, JournalEntry{
			ID:        id.New(),
			CompanyID: companyID,
			VoucherID: v.ID,
			LedgerID:  jl.LedgerID,
			Debit:     jl.Debit,
			Credit:    jl.Credit,
		})
	}
	return v
}

// GetByID retrieves a voucher with its items and journal entries.
func (s *Service) GetByID(ctx context.Context, companyID, voucherID id.ID) (*Voucher, error) {
	v, err := s.repo.GetByID(ctx, companyID, voucherID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperror.NewNotFound("voucher", voucherID.String())
	}

	items, err := s.repo.GetItems(ctx, voucherID)
	if err != nil {
		return nil, fmt.Errorf("get voucher items: %w", err)
	}
	v.Items = items

	entries, err := s.repo.GetEntries(ctx, voucherID)
	if err != nil {
		return nil, fmt.Errorf("get journal entries: %w", err)
	}
	v.Entries = entries

	return v, nil
}

// List retrieves vouchers with filtering and pagination.
func (s *Service) List(ctx context.Context, companyID id.ID, filter ListFilter) (ListResult, error) {
	return s.repo.List(ctx, companyID, filter)
}

// NextNumberPreview returns the number the next posting of this type
// would most likely receive. Advisory only; it may race with an actual
// posting and must never be treated as reserved.
func (s *Service) NextNumberPreview(ctx context.Context, companyID id.ID, t Type) (int64, error) {
	if !t.IsValid() {
		return 0, apperror.NewValidation("invalid voucher type").
			WithDetail("field", "type").
			WithDetail("value", string(t))
	}
	return s.sequencer.Peek(ctx, companyID, string(t))
}

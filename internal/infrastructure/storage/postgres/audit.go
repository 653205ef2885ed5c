package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	appctx "bahikhata/internal/core/context"
	"bahikhata/internal/core/id"
)

// AuditAction represents the type of audited operation.
type AuditAction string

const (
	AuditActionInsert AuditAction = "INSERT"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// CompressionAlgo specifies the compression algorithm used for payloads.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditEntry is one append-only change record. It is written by the same
// transaction that mutates the audited row, so a rolled-back posting
// leaves no audit trace.
type AuditEntry struct {
	ID              id.ID           `db:"id"`
	CompanyID       id.ID           `db:"company_id"`
	TableName       string          `db:"table_name"`
	RecordID        id.ID           `db:"record_id"`
	Action          AuditAction     `db:"action"`
	OldData         json.RawMessage `db:"old_data"`
	NewData         json.RawMessage `db:"new_data"`
	DataCompressed  []byte          `db:"data_compressed"`
	CompressionAlgo CompressionAlgo `db:"compression_algo"`
	UserID          *id.ID          `db:"user_id"`
	CreatedAt       time.Time       `db:"created_at"`
}

// compressedPayload bundles both states for oversized entries.
type compressedPayload struct {
	Old json.RawMessage `json:"old,omitempty"`
	New json.RawMessage `json:"new,omitempty"`
}

// AuditService provides audit logging functionality.
type AuditService struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int // bytes, default 10KB
}

// NewAuditService creates a new audit service.
func NewAuditService(txManager *TxManager) (*AuditService, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditService{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024, // 10KB
	}, nil
}

// Log records an audit entry.
func (s *AuditService) Log(ctx context.Context, entry AuditEntry) error {
	// Fill user and company from context when not set explicitly
	if user := appctx.GetUser(ctx); user != nil {
		if entry.UserID == nil && !id.IsNil(user.UserID) {
			uid := user.UserID
			entry.UserID = &uid
		}
		if id.IsNil(entry.CompanyID) {
			entry.CompanyID = user.CompanyID
		}
	}

	if id.IsNil(entry.ID) {
		entry.ID = id.New()
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	// Compress oversized payloads, keeping small ones queryable as JSONB
	entry.CompressionAlgo = CompressionNone
	if len(entry.OldData)+len(entry.NewData) > s.compressThreshold {
		payload, err := json.Marshal(compressedPayload{Old: entry.OldData, New: entry.NewData})
		if err != nil {
			return fmt.Errorf("marshal audit payload: %w", err)
		}
		entry.DataCompressed = s.encoder.EncodeAll(payload, nil)
		entry.OldData = nil
		entry.NewData = nil
		entry.CompressionAlgo = CompressionZstd
	}

	sql := `
		INSERT INTO audit_logs (
			id, company_id, table_name, record_id, action,
			old_data, new_data, data_compressed, compression_algo,
			user_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	querier := s.txManager.GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		entry.ID, entry.CompanyID, entry.TableName, entry.RecordID, entry.Action,
		entry.OldData, entry.NewData, entry.DataCompressed, entry.CompressionAlgo,
		entry.UserID, entry.CreatedAt,
	)

	return err
}

// LogInsert is a convenience method for recording a freshly created row.
func (s *AuditService) LogInsert(ctx context.Context, tableName string, recordID id.ID, newState any) error {
	data, err := json.Marshal(newState)
	if err != nil {
		return fmt.Errorf("marshal new state: %w", err)
	}

	return s.Log(ctx, AuditEntry{
		TableName: tableName,
		RecordID:  recordID,
		Action:    AuditActionInsert,
		NewData:   data,
	})
}

// LogUpdate records an update with before/after states.
func (s *AuditService) LogUpdate(ctx context.Context, tableName string, recordID id.ID, oldState, newState any) error {
	oldData, err := json.Marshal(oldState)
	if err != nil {
		return fmt.Errorf("marshal old state: %w", err)
	}
	newData, err := json.Marshal(newState)
	if err != nil {
		return fmt.Errorf("marshal new state: %w", err)
	}

	return s.Log(ctx, AuditEntry{
		TableName: tableName,
		RecordID:  recordID,
		Action:    AuditActionUpdate,
		OldData:   oldData,
		NewData:   newData,
	})
}

// LogDelete records a deletion with the final state of the row.
func (s *AuditService) LogDelete(ctx context.Context, tableName string, recordID id.ID, oldState any) error {
	data, err := json.Marshal(oldState)
	if err != nil {
		return fmt.Errorf("marshal old state: %w", err)
	}

	return s.Log(ctx, AuditEntry{
		TableName: tableName,
		RecordID:  recordID,
		Action:    AuditActionDelete,
		OldData:   data,
	})
}

// GetRecordHistory retrieves audit history for a record, newest first.
func (s *AuditService) GetRecordHistory(ctx context.Context, companyID id.ID, tableName string, recordID id.ID, limit int) ([]AuditEntry, error) {
	sql := `
		SELECT id, company_id, table_name, record_id, action,
			   old_data, new_data, data_compressed, compression_algo,
			   user_id, created_at
		FROM audit_logs
		WHERE company_id = $1 AND table_name = $2 AND record_id = $3
		ORDER BY created_at DESC
		LIMIT $4
	`

	rows, err := s.txManager.GetQuerier(ctx).Query(ctx, sql, companyID, tableName, recordID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		err := rows.Scan(
			&e.ID, &e.CompanyID, &e.TableName, &e.RecordID, &e.Action,
			&e.OldData, &e.NewData, &e.DataCompressed, &e.CompressionAlgo,
			&e.UserID, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		// Decompress if needed
		if e.CompressionAlgo == CompressionZstd && len(e.DataCompressed) > 0 {
			decompressed, err := s.decoder.DecodeAll(e.DataCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress payload: %w", err)
			}
			var payload compressedPayload
			if err := json.Unmarshal(decompressed, &payload); err != nil {
				return nil, fmt.Errorf("unmarshal payload: %w", err)
			}
			e.OldData = payload.Old
			e.NewData = payload.New
			e.DataCompressed = nil
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

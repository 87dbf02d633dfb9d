package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/model"
)

// FileName is the ledger file inside a workspace.
const FileName = "ledger.csv"

// Service provides the file-backed transaction store for a workspace.
type Service struct {
	root string
}

// NewService creates a ledger Service rooted at a workspace directory.
func NewService(root string) *Service {
	return &Service{root: root}
}

// Path returns the ledger.csv path for this workspace.
func (s *Service) Path() string {
	return filepath.Join(s.root, FileName)
}

// ReadAll reads every transaction in the ledger. A missing ledger file
// is an empty ledger, not an error.
func (s *Service) ReadAll() ([]model.Transaction, error) {
	path := s.Path()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

// AppendParams holds parameters for recording a new transaction.
type AppendParams struct {
	Type         model.TransactionType
	Amount       decimal.Decimal
	Date         string
	Category     string
	Status       model.LedgerStatus // defaults to unreconciled
	IsRecurring  bool
	GSTEligible  bool
	ScheduledFor *time.Time
	Tags         string
	Description  string
}

// Append validates and records a new transaction, minting its ID.
// The whole ledger (existing rows plus the new one) is validated
// before anything is written.
func (s *Service) Append(params AppendParams) (string, error) {
	ids, err := s.AppendAll([]AppendParams{params})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// AppendAll validates and records a batch of transactions, minting
// their IDs. The whole ledger (existing rows plus the batch) is
// validated up front, so the batch lands in full or not at all.
func (s *Service) AppendAll(batch []AppendParams) ([]string, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	txns := make([]model.Transaction, 0, len(batch))
	for _, params := range batch {
		status := params.Status
		if status == "" {
			status = model.StatusUnreconciled
		}
		txns = append(txns, model.Transaction{
			ID:           uuid.NewString(),
			Type:         params.Type,
			Amount:       params.Amount,
			Date:         params.Date,
			Category:     params.Category,
			Status:       status,
			IsRecurring:  params.IsRecurring,
			GSTEligible:  params.GSTEligible,
			ScheduledFor: params.ScheduledFor,
			Tags:         params.Tags,
			Description:  params.Description,
		})
	}

	existing, err := s.ReadAll()
	if err != nil {
		return nil, err
	}

	all := append(existing, txns...)
	if verrs := ValidateTransactions(all); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return nil, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	path := s.Path()
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendTransactions(f, txns); err != nil {
		return nil, fmt.Errorf("appending transactions: %w", err)
	}

	ids := make([]string, len(txns))
	for i, txn := range txns {
		ids[i] = txn.ID
	}
	return ids, nil
}

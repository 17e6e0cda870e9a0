/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements payroll.Store (ledger entries, processed-event set, balance
  index), billing.Store (invoices and the invoice-number counter), and
  events.Source (read-only view over the upstream record tables shared
  with the master-data application). In production the same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE or DELETE statements touch ledger_entries, ever
  - The UNIQUE(source, source_id) constraint and the processed_events
    primary key independently reject double derivation
  - An entry, its processed marker and the balance upsert commit in one
    database transaction; a crash cannot leave partial state

INVOICE DISCIPLINE:
  - Status advances via UPDATE ... WHERE id=? AND status=? (compare-and-
    set); zero rows affected means not-found or a state violation
  - invoice_counter is a single-row table incremented in its own
    transaction; numbers survive draft deletions

KEY TABLES:
  ledger_entries:    Immutable payroll ledger
  processed_events:  Exactly-once derivation guard
  employee_balances: Current balance index per employee
  invoices:          Invoice records with lifecycle status
  invoice_counter:   Monotonic invoice numbering
  guard_duty, day_labor, escort_duty, loan_advances:
                     Upstream collections (read here, written by the
                     master-data application or by demo seeding)

WAL MODE:
  SQLite is opened with WAL for better concurrency: multiple readers
  don't block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil { ... }
  defer store.Close()

SEE ALSO:
  - payroll/store.go, billing/store.go: Interface definitions
  - payroll/store/memory.go, billing/store/memory.go: In-memory twins
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/billing"
	"github.com/warp/payroll-engine/events"
	"github.com/warp/payroll-engine/payroll"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

var (
	_ payroll.Store   = (*Store)(nil)
	_ billing.Store   = (*Store)(nil)
	_ events.Source   = (*Store)(nil)
	_ events.Recorder = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Payroll ledger (append-only)
	CREATE TABLE IF NOT EXISTS ledger_entries (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		source TEXT NOT NULL,
		source_id TEXT NOT NULL,
		date TEXT NOT NULL,
		month TEXT NOT NULL,
		shift_or_hours TEXT,
		earned TEXT NOT NULL,
		deducted TEXT NOT NULL,
		net_change TEXT NOT NULL,
		running_balance TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(source, source_id)
	);

	CREATE INDEX IF NOT EXISTS idx_ledger_employee
		ON ledger_entries(employee_id);
	CREATE INDEX IF NOT EXISTS idx_ledger_month
		ON ledger_entries(month);
	CREATE INDEX IF NOT EXISTS idx_ledger_employee_month
		ON ledger_entries(employee_id, month);

	-- Exactly-once derivation guard
	CREATE TABLE IF NOT EXISTS processed_events (
		event_key TEXT PRIMARY KEY,
		processed_at TEXT NOT NULL
	);

	-- Current balance index (derivable by replaying the ledger)
	CREATE TABLE IF NOT EXISTS employee_balances (
		employee_id TEXT PRIMARY KEY,
		balance TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Invoices
	CREATE TABLE IF NOT EXISTS invoices (
		id TEXT PRIMARY KEY,
		number INTEGER NOT NULL UNIQUE,
		invoice_number TEXT NOT NULL,
		client_id TEXT,
		client_name TEXT NOT NULL,
		period_start TEXT NOT NULL,
		period_end TEXT NOT NULL,
		escort_days TEXT NOT NULL,
		escort_amount TEXT NOT NULL,
		guard_days TEXT NOT NULL,
		guard_amount TEXT NOT NULL,
		labor_hours TEXT NOT NULL,
		labor_amount TEXT NOT NULL,
		subtotal TEXT NOT NULL,
		vat_percent TEXT NOT NULL,
		vat_amount TEXT NOT NULL,
		total TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_invoices_client
		ON invoices(client_id);
	CREATE INDEX IF NOT EXISTS idx_invoices_status
		ON invoices(status);
	CREATE INDEX IF NOT EXISTS idx_invoices_period
		ON invoices(period_start, period_end);

	-- Monotonic invoice numbering, never reused after deletions
	CREATE TABLE IF NOT EXISTS invoice_counter (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		value INTEGER NOT NULL
	);
	INSERT OR IGNORE INTO invoice_counter (id, value) VALUES (1, 0);

	-- Upstream record collections (owned by the master-data application)
	CREATE TABLE IF NOT EXISTS guard_duty (
		id TEXT PRIMARY KEY,
		employee_id TEXT,
		employee_name TEXT,
		client_name TEXT,
		date TEXT,
		shift TEXT,
		status TEXT
	);

	CREATE TABLE IF NOT EXISTS day_labor (
		id TEXT PRIMARY KEY,
		employee_id TEXT,
		employee_name TEXT,
		client_name TEXT,
		date TEXT,
		hours_worked TEXT
	);

	CREATE TABLE IF NOT EXISTS escort_duty (
		id TEXT PRIMARY KEY,
		employee_id TEXT,
		employee_name TEXT,
		client_name TEXT,
		start_date TEXT,
		end_date TEXT,
		status TEXT,
		total_days TEXT,
		conveyance TEXT
	);

	CREATE TABLE IF NOT EXISTS loan_advances (
		id TEXT PRIMARY KEY,
		employee_id TEXT,
		employee_name TEXT,
		issue_date TEXT,
		type TEXT,
		amount TEXT,
		status TEXT
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LEDGER STORE (payroll.Store interface)
// =============================================================================

// Append records entry + processed marker + balance upsert in one database
// transaction.
func (s *Store) Append(ctx context.Context, entry payroll.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO processed_events (event_key, processed_at) VALUES (?, ?)`,
		entry.EventKey(), now,
	); err != nil {
		if isUniqueConstraintError(err) {
			return &payroll.DuplicateEventError{Source: entry.Source, SourceID: entry.SourceID}
		}
		return fmt.Errorf("mark processed: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_entries
		(id, employee_id, employee_name, source, source_id, date, month,
		 shift_or_hours, earned, deducted, net_change, running_balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.EmployeeID,
		entry.EmployeeName,
		string(entry.Source),
		entry.SourceID,
		entry.Date,
		entry.Month,
		entry.ShiftOrHours,
		entry.Earned.String(),
		entry.Deducted.String(),
		entry.NetChange.String(),
		entry.RunningBalance.String(),
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		if isUniqueConstraintError(err) {
			return &payroll.DuplicateEventError{Source: entry.Source, SourceID: entry.SourceID}
		}
		return fmt.Errorf("insert entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO employee_balances (employee_id, balance, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(employee_id) DO UPDATE SET balance = excluded.balance, updated_at = excluded.updated_at`,
		entry.EmployeeID, entry.RunningBalance.String(), now,
	); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}

	return tx.Commit()
}

func (s *Store) Processed(ctx context.Context, eventKey string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM processed_events WHERE event_key = ?`, eventKey,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check processed: %w", err)
	}
	return true, nil
}

func (s *Store) CurrentBalance(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT balance FROM employee_balances WHERE employee_id = ?`, employeeID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("read balance: %w", err)
	}
	return parseDecimal(raw)
}

func (s *Store) Query(ctx context.Context, f payroll.Filter) ([]payroll.LedgerEntry, error) {
	query := `SELECT id, employee_id, employee_name, source, source_id, date, month,
	                 shift_or_hours, earned, deducted, net_change, running_balance, created_at
	          FROM ledger_entries WHERE 1=1`
	var args []any
	if f.EmployeeID != "" {
		query += ` AND employee_id = ?`
		args = append(args, f.EmployeeID)
	}
	if f.Month != "" {
		query += ` AND month = ?`
		args = append(args, f.Month)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	var entries []payroll.LedgerEntry
	for rows.Next() {
		var e payroll.LedgerEntry
		var source, earned, deducted, net, balance, createdAt string
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.EmployeeName, &source, &e.SourceID,
			&e.Date, &e.Month, &e.ShiftOrHours, &earned, &deducted, &net, &balance, &createdAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Source = payroll.SourceModule(source)
		if e.Earned, err = parseDecimal(earned); err != nil {
			return nil, err
		}
		if e.Deducted, err = parseDecimal(deducted); err != nil {
			return nil, err
		}
		if e.NetChange, err = parseDecimal(net); err != nil {
			return nil, err
		}
		if e.RunningBalance, err = parseDecimal(balance); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// =============================================================================
// INVOICE STORE (billing.Store interface)
// =============================================================================

func (s *Store) Create(ctx context.Context, inv billing.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invoices
		(id, number, invoice_number, client_id, client_name, period_start, period_end,
		 escort_days, escort_amount, guard_days, guard_amount, labor_hours, labor_amount,
		 subtotal, vat_percent, vat_amount, total, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Number, inv.InvoiceNumber, inv.ClientID, inv.ClientName,
		inv.PeriodStart, inv.PeriodEnd,
		inv.EscortDays.String(), inv.EscortAmount.String(),
		inv.GuardDays.String(), inv.GuardAmount.String(),
		inv.LaborHours.String(), inv.LaborAmount.String(),
		inv.Subtotal.String(), inv.VATPercent.String(), inv.VATAmount.String(), inv.Total.String(),
		string(inv.Status), inv.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (billing.Invoice, error) {
	row := s.db.QueryRowContext(ctx, selectInvoice+` WHERE id = ?`, id)
	inv, err := scanInvoice(row)
	if err == sql.ErrNoRows {
		return billing.Invoice{}, billing.ErrInvoiceNotFound
	}
	return inv, err
}

func (s *Store) List(ctx context.Context, f billing.InvoiceFilter) ([]billing.Invoice, error) {
	query := selectInvoice + ` WHERE 1=1`
	var args []any
	if f.ClientID != "" {
		query += ` AND client_id = ?`
		args = append(args, f.ClientID)
	}
	if f.From != "" {
		query += ` AND period_end >= ?`
		args = append(args, f.From)
	}
	if f.To != "" {
		query += ` AND period_start <= ?`
		args = append(args, f.To)
	}
	query += ` ORDER BY number`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []billing.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// TransitionStatus is a compare-and-set scoped to the invoice id: the
// UPDATE only applies when the stored status still equals `from`.
func (s *Store) TransitionStatus(ctx context.Context, id string, from, to billing.Status) (billing.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx,
		`UPDATE invoices SET status = ? WHERE id = ? AND status = ?`,
		string(to), id, string(from),
	)
	if err != nil {
		return billing.Invoice{}, fmt.Errorf("transition invoice: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return billing.Invoice{}, fmt.Errorf("transition invoice: %w", err)
	}
	if affected == 0 {
		return billing.Invoice{}, s.transitionFailure(ctx, id, to)
	}

	row := s.db.QueryRowContext(ctx, selectInvoice+` WHERE id = ?`, id)
	return scanInvoice(row)
}

func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM invoices WHERE id = ? AND status = ?`,
		id, string(billing.StatusDraft),
	)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if affected == 0 {
		return s.deleteFailure(ctx, id)
	}
	return nil
}

func (s *Store) NextNumber(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin counter: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE invoice_counter SET value = value + 1 WHERE id = 1`); err != nil {
		return 0, fmt.Errorf("increment counter: %w", err)
	}

	var value int64
	if err := tx.QueryRowContext(ctx, `SELECT value FROM invoice_counter WHERE id = 1`).Scan(&value); err != nil {
		return 0, fmt.Errorf("read counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit counter: %w", err)
	}
	return value, nil
}

// transitionFailure distinguishes "no such invoice" from "wrong state"
// after a zero-row CAS update.
func (s *Store) transitionFailure(ctx context.Context, id string, to billing.Status) error {
	var status string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM invoices WHERE id = ?`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return billing.ErrInvoiceNotFound
	}
	if err != nil {
		return fmt.Errorf("load invoice status: %w", err)
	}
	action := "transition"
	switch to {
	case billing.StatusFinalized:
		action = "finalize"
	case billing.StatusPaid:
		action = "mark-paid"
	}
	return &billing.InvalidStateError{ID: id, Status: billing.Status(status), Action: action}
}

func (s *Store) deleteFailure(ctx context.Context, id string) error {
	var status string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM invoices WHERE id = ?`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return billing.ErrInvoiceNotFound
	}
	if err != nil {
		return fmt.Errorf("load invoice status: %w", err)
	}
	return &billing.InvalidStateError{ID: id, Status: billing.Status(status), Action: "delete"}
}

const selectInvoice = `SELECT id, number, invoice_number, client_id, client_name,
	period_start, period_end, escort_days, escort_amount, guard_days, guard_amount,
	labor_hours, labor_amount, subtotal, vat_percent, vat_amount, total, status, created_at
	FROM invoices`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (billing.Invoice, error) {
	var inv billing.Invoice
	var clientID sql.NullString
	var escortDays, escortAmount, guardDays, guardAmount, laborHours, laborAmount string
	var subtotal, vatPercent, vatAmount, total, status, createdAt string

	err := row.Scan(&inv.ID, &inv.Number, &inv.InvoiceNumber, &clientID, &inv.ClientName,
		&inv.PeriodStart, &inv.PeriodEnd,
		&escortDays, &escortAmount, &guardDays, &guardAmount, &laborHours, &laborAmount,
		&subtotal, &vatPercent, &vatAmount, &total, &status, &createdAt)
	if err != nil {
		return billing.Invoice{}, err
	}

	inv.ClientID = clientID.String
	inv.Status = billing.Status(status)
	inv.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	for _, pair := range []struct {
		dst *decimal.Decimal
		raw string
	}{
		{&inv.EscortDays, escortDays}, {&inv.EscortAmount, escortAmount},
		{&inv.GuardDays, guardDays}, {&inv.GuardAmount, guardAmount},
		{&inv.LaborHours, laborHours}, {&inv.LaborAmount, laborAmount},
		{&inv.Subtotal, subtotal}, {&inv.VATPercent, vatPercent},
		{&inv.VATAmount, vatAmount}, {&inv.Total, total},
	} {
		if *pair.dst, err = parseDecimal(pair.raw); err != nil {
			return billing.Invoice{}, err
		}
	}
	return inv, nil
}

// =============================================================================
// EVENT SOURCE (events.Source / events.Recorder interfaces)
// =============================================================================

func (s *Store) GuardDuty(ctx context.Context) ([]events.GuardDutyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, employee_name, client_name, date, shift, status
		 FROM guard_duty ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query guard duty: %w", err)
	}
	defer rows.Close()

	var records []events.GuardDutyRecord
	for rows.Next() {
		var r events.GuardDutyRecord
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.EmployeeName, &r.ClientName,
			&r.Date, &r.Shift, &r.Status); err != nil {
			return nil, fmt.Errorf("scan guard duty: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) DayLabor(ctx context.Context) ([]events.DayLaborRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, employee_name, client_name, date, hours_worked
		 FROM day_labor ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query day labor: %w", err)
	}
	defer rows.Close()

	var records []events.DayLaborRecord
	for rows.Next() {
		var r events.DayLaborRecord
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.EmployeeName, &r.ClientName,
			&r.Date, &r.HoursWorked); err != nil {
			return nil, fmt.Errorf("scan day labor: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) EscortDuty(ctx context.Context) ([]events.EscortDutyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, employee_name, client_name, start_date, end_date, status, total_days, conveyance
		 FROM escort_duty ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query escort duty: %w", err)
	}
	defer rows.Close()

	var records []events.EscortDutyRecord
	for rows.Next() {
		var r events.EscortDutyRecord
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.EmployeeName, &r.ClientName,
			&r.StartDate, &r.EndDate, &r.Status, &r.TotalDays, &r.Conveyance); err != nil {
			return nil, fmt.Errorf("scan escort duty: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) LoanAdvances(ctx context.Context) ([]events.LoanAdvanceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, employee_name, issue_date, type, amount, status
		 FROM loan_advances ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query loan advances: %w", err)
	}
	defer rows.Close()

	var records []events.LoanAdvanceRecord
	for rows.Next() {
		var r events.LoanAdvanceRecord
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.EmployeeName, &r.IssueDate,
			&r.Type, &r.Amount, &r.Status); err != nil {
			return nil, fmt.Errorf("scan loan advances: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) RecordGuardDuty(ctx context.Context, rec events.GuardDutyRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO guard_duty (id, employee_id, employee_name, client_name, date, shift, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeID, rec.EmployeeName, rec.ClientName, rec.Date, rec.Shift, rec.Status)
	return err
}

func (s *Store) RecordDayLabor(ctx context.Context, rec events.DayLaborRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO day_labor (id, employee_id, employee_name, client_name, date, hours_worked)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeID, rec.EmployeeName, rec.ClientName, rec.Date, rec.HoursWorked)
	return err
}

func (s *Store) RecordEscortDuty(ctx context.Context, rec events.EscortDutyRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO escort_duty (id, employee_id, employee_name, client_name, start_date, end_date, status, total_days, conveyance)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeID, rec.EmployeeName, rec.ClientName, rec.StartDate, rec.EndDate, rec.Status, rec.TotalDays, rec.Conveyance)
	return err
}

func (s *Store) RecordLoanAdvance(ctx context.Context, rec events.LoanAdvanceRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO loan_advances (id, employee_id, employee_name, issue_date, type, amount, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeID, rec.EmployeeName, rec.IssueDate, rec.Type, rec.Amount, rec.Status)
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

func parseDecimal(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt decimal %q: %w", raw, err)
	}
	return d, nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

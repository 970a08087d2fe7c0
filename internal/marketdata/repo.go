package marketdata

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"earnsim/internal/models"
	"earnsim/pkg/db"
)

// Session bounds for next-day books, minutes of day ET. Books run from the
// open through extended hours, matching the snapshot feed.
const (
	sessionOpen  = 9*60 + 30
	sessionClose = 19 * 60
)

// Repo is the storage collaborator: earnings records, minute BBO, model
// outputs and simulation results.
type Repo struct {
	tx db.TxManager
}

func NewRepo(tx db.TxManager) *Repo {
	return &Repo{tx: tx}
}

// Earnings loads one symbol/quarter record and builds its next-session book
// snapshot sequence from the raw minute quotes.
func (r *Repo) Earnings(ctx context.Context, symbol, quarter string) (*models.EarningsRecord, error) {
	rec := &models.EarningsRecord{Symbol: symbol, Quarter: quarter}
	row := r.tx.Conn().QueryRow(ctx, `
		SELECT date, eps_actual, eps_estimate, revenue_actual, revenue_estimate,
		       optimal_order, moc_bid, moc_ask, past_marks
		FROM earnings
		WHERE symbol = $1 AND quarter = $2`, symbol, quarter)
	if err := row.Scan(&rec.Date, &rec.EPSActual, &rec.EPSEstimate,
		&rec.RevenueActual, &rec.RevenueEstimate,
		&rec.Optimal.Order, &rec.MOC.Bid, &rec.MOC.Ask, &rec.PastMarks); err != nil {
		return nil, errors.Wrapf(err, "load earnings %s %s", symbol, quarter)
	}
	rec.Optimal.Side = models.SideOfOrder(rec.Optimal.Order)

	raw, err := r.rawBBO(ctx, symbol, rec.Date.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	rec.Books = CompactBooks(raw)
	return rec, nil
}

func (r *Repo) rawBBO(ctx context.Context, symbol string, day time.Time) ([]RawTick, error) {
	rows, err := r.tx.Conn().Query(ctx, `
		SELECT time_of_day, bid, ask
		FROM bbo_1m
		WHERE symbol = $1 AND et_date = $2 AND time_of_day BETWEEN $3 AND $4
		ORDER BY time_of_day`, symbol, day, sessionOpen, sessionClose)
	if err != nil {
		return nil, errors.Wrapf(err, "load bbo %s", symbol)
	}
	defer rows.Close()

	var out []RawTick
	for rows.Next() {
		var t RawTick
		if err := rows.Scan(&t.TimeOfDay, &t.Bid, &t.Ask); err != nil {
			return nil, errors.Wrap(err, "scan bbo row")
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// BBOAt returns the first quote at or after timeOfDay on the given day.
// Used to price stop fills; missing data is an error for the caller to
// classify.
func (r *Repo) BBOAt(ctx context.Context, symbol string, day time.Time, timeOfDay float64) (models.Quote, error) {
	var q models.Quote
	row := r.tx.Conn().QueryRow(ctx, `
		SELECT bid, ask
		FROM bbo_1m
		WHERE symbol = $1 AND et_date = $2 AND time_of_day >= $3
		ORDER BY time_of_day
		LIMIT 1`, symbol, day, timeOfDay)
	if err := row.Scan(&q.Bid, &q.Ask); err != nil {
		return models.Quote{}, errors.Wrapf(err, "bbo %s t=%.1f", symbol, timeOfDay)
	}
	return q, nil
}

func (r *Repo) InsertBBO(ctx context.Context, symbol string, day time.Time, timeOfDay float64, q models.Quote) error {
	_, err := r.tx.Conn().Exec(ctx, `
		INSERT INTO bbo_1m (symbol, et_date, time_of_day, bid, ask)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (symbol, et_date, time_of_day) DO NOTHING`,
		symbol, day, timeOfDay, q.Bid, q.Ask)
	return errors.Wrap(err, "insert bbo")
}

// Outputs returns every model answer awaiting evaluation.
func (r *Repo) Outputs(ctx context.Context) ([]models.LLMOutput, error) {
	rows, err := r.tx.Conn().Query(ctx, `
		SELECT symbol, quarter, model, COALESCE(order_text, ''), COALESCE(response_text, '')
		FROM llm_outputs`)
	if err != nil {
		return nil, errors.Wrap(err, "load llm outputs")
	}
	defer rows.Close()

	var out []models.LLMOutput
	for rows.Next() {
		var o models.LLMOutput
		if err := rows.Scan(&o.Key.Symbol, &o.Key.Quarter, &o.Key.Model, &o.Order, &o.Text); err != nil {
			return nil, errors.Wrap(err, "scan llm output")
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// InsertOutputs upserts a batch of imported answers in one transaction.
func (r *Repo) InsertOutputs(ctx context.Context, outs []models.LLMOutput) error {
	return r.tx.InTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, o := range outs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO llm_outputs (symbol, quarter, model, order_text, response_text)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (symbol, quarter, model)
				DO UPDATE SET order_text = $4, response_text = $5`,
				o.Key.Symbol, o.Key.Quarter, o.Key.Model, o.Order, o.Text); err != nil {
				return errors.Wrapf(err, "insert output %s %s %s", o.Key.Symbol, o.Key.Quarter, o.Key.Model)
			}
		}
		return nil
	})
}

// SaveResult upserts the final state of one record. Entry, exit and the
// audit list of matched orders are kept as JSON next to the flat columns
// the exporter reads.
func (r *Repo) SaveResult(ctx context.Context, res *models.SimulationResult) error {
	entry, err := sonic.Marshal(res.Entry)
	if err != nil {
		return errors.Wrap(err, "marshal entry")
	}
	orders, err := sonic.Marshal(res.Orders)
	if err != nil {
		return errors.Wrap(err, "marshal orders")
	}
	var exit []byte
	var exitKind string
	if res.Exit != nil {
		if exit, err = sonic.Marshal(res.Exit); err != nil {
			return errors.Wrap(err, "marshal exit")
		}
		exitKind = string(res.Exit.Kind)
	}
	var errText *string
	if res.Err != nil {
		s := res.Err.Error()
		errText = &s
	}

	_, err = r.tx.Conn().Exec(ctx, `
		INSERT INTO results (symbol, quarter, model, orders, entry, exit,
		                     side, position, profit, return, exit_type, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (symbol, quarter, model)
		DO UPDATE SET orders = $4, entry = $5, exit = $6, side = $7,
		              position = $8, profit = $9, return = $10,
		              exit_type = $11, error = $12`,
		res.Key.Symbol, res.Key.Quarter, res.Key.Model,
		orders, entry, exit,
		string(res.Entry.Side), res.Entry.Notional,
		res.Profit, res.Return, exitKind, errText)
	return errors.Wrap(err, "save result")
}

// ResultRow is one line of the export report.
type ResultRow struct {
	Symbol      string
	Quarter     string
	Model       string
	Profit      float64
	Return      float64
	Position    float64
	Side        string
	OptimalSide string
	ExitType    string
}

// Results joins computed results with the hindsight-optimal side for
// reporting.
func (r *Repo) Results(ctx context.Context) ([]ResultRow, error) {
	rows, err := r.tx.Conn().Query(ctx, `
		SELECT r.symbol, r.quarter, r.model, r.profit, r.return, r.position,
		       r.side, COALESCE(e.optimal_order, ''), COALESCE(r.exit_type, '')
		FROM results r
		LEFT JOIN earnings e ON e.symbol = r.symbol AND e.quarter = r.quarter
		ORDER BY r.symbol, r.quarter, r.model`)
	if err != nil {
		return nil, errors.Wrap(err, "load results")
	}
	defer rows.Close()

	var out []ResultRow
	for rows.Next() {
		var row ResultRow
		var optimal string
		if err := rows.Scan(&row.Symbol, &row.Quarter, &row.Model, &row.Profit,
			&row.Return, &row.Position, &row.Side, &optimal, &row.ExitType); err != nil {
			return nil, errors.Wrap(err, "scan result row")
		}
		row.OptimalSide = string(models.SideOfOrder(optimal))
		out = append(out, row)
	}
	return out, rows.Err()
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"earnsim/internal/marketdata"
	"earnsim/pkg/db"
)

// Dumps computed results as CSV:
// symbol,quarter,model,profit,return,position,side,optimalSide,exitType

func main() {
	viper.SetDefault("out", "results.csv")
	viper.AutomaticEnv()
	_ = viper.BindEnv("dsn", "DATABASE_DSN")
	_ = viper.BindEnv("out", "EXPORT_OUT")

	if viper.GetString("dsn") == "" {
		panic("DATABASE_DSN is required")
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	pool, err := db.NewPool(ctx, db.PoolConfig{DSN: viper.GetString("dsn")})
	if err != nil {
		return errors.Wrap(err, "create pool")
	}
	m := db.NewPgTxManager(pool)
	defer m.Close()

	rows, err := marketdata.NewRepo(m).Results(ctx)
	if err != nil {
		return errors.Wrap(err, "load results")
	}

	var b strings.Builder
	b.WriteString("symbol,quarter,model,profit,return,position,side,optimalSide,exitType\r\n")
	for _, r := range rows {
		exit := r.ExitType
		if exit == "" {
			exit = "N/A"
		}
		fmt.Fprintf(&b, "%s,%s,%s,%g,%g,%g,%s,%s,%s\r\n",
			r.Symbol, r.Quarter, r.Model, r.Profit, r.Return, r.Position,
			r.Side, r.OptimalSide, exit)
	}
	if err := os.WriteFile(viper.GetString("out"), []byte(b.String()), 0o644); err != nil {
		return errors.Wrap(err, "write csv")
	}
	fmt.Printf("exported %d rows\n", len(rows))
	return nil
}

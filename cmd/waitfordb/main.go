// Command waitfordb blocks until the credential store accepts connections,
// for deployment orchestration to gate the web process on.
//
// Exit codes: 0 when the database answered, 1 when the overall deadline
// passed without a successful ping, 2 on usage errors.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
)

const (
	exitTimeout = 1
	exitUsage   = 2

	attemptTimeout = 3 * time.Second
)

func main() {
	dsn := flag.String("dsn", os.Getenv("POSTGRES_DSN"), "postgres connection string")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	interval := flag.Duration("interval", time.Second, "poll interval")
	flag.Parse()

	if *dsn == "" {
		fmt.Fprintln(os.Stderr, "waitfordb: -dsn (or POSTGRES_DSN) is required")
		os.Exit(exitUsage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	backoff := retry.WithMaxDuration(*timeout, retry.NewConstant(*interval))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		defer cancel()

		db, err := sql.Open("pgx", *dsn)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer db.Close()

		if err := db.PingContext(attemptCtx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "waitfordb: database not reachable: %v\n", err)
		os.Exit(exitTimeout)
	}

	fmt.Println("database available")
}

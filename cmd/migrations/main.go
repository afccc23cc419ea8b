package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/pollvote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollvote/internal/config"
)

// Usage: migrations [name]. Without a name every up migration is applied;
// with one, only the file ending in "<name>.sql" runs.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	if len(os.Args) < 2 {
		err = postgres.Migrate(ctx, db)
	} else {
		err = postgres.MigrateNamed(ctx, db, os.Args[1])
	}
	if err != nil {
		log.Fatalf("Failed to execute migrations: %v", err)
	}

	fmt.Println("Migrations executed successfully.")
}

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Executes the statements of a SQL file against the contacts database, all
// inside a single transaction. Useful for ad-hoc schema changes and for
// batch imports that must either apply completely or not at all.
//
// Usage example on the command line:
// > DB_PATH=contacts.db go run main.go -file=../../scripts/import.sql
func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "contacts.db"
	}
	filePtr := flag.String("file", "import.sql", "the sql file to execute")
	flag.Parse()

	db, err := sqlx.Open("sqlite3", dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	readFile, err := os.Open(*filePtr)
	if err != nil {
		panic(err)
	}
	defer readFile.Close()

	tx := db.MustBegin()
	count := 0
	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	for fileScanner.Scan() {
		line := fileScanner.Text()
		// Join with newlines so that -- comments end where the line ends.
		builder.WriteString(line)
		builder.WriteString("\n")
		if strings.Contains(line, ";") {
			statement := builder.String()
			if _, err := tx.Exec(statement); err != nil {
				tx.Rollback()
				panic(err)
			}
			count++
			builder = strings.Builder{}
		}
	}
	if err := fileScanner.Err(); err != nil {
		tx.Rollback()
		panic(err)
	}
	if err := tx.Commit(); err != nil {
		panic(err)
	}
	fmt.Printf("executed %d statements\n", count)
}

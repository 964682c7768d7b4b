package main

import (
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Imports a student roster CSV against a running API via the bulk
// registration endpoint. Columns: username, password, name, surname,
// class, subject1;subject2;...
//
//	go run ./scripts/importroster -file roster.csv -url http://localhost:3000 -token <admin token>
func main() {
	file := flag.String("file", "roster.csv", "roster CSV file")
	baseURL := flag.String("url", "http://localhost:3000", "API base URL")
	token := flag.String("token", "", "admin bearer token")
	flag.Parse()

	if *token == "" {
		log.Fatal("-token is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	type assignment struct {
		Subject string `json:"subject"`
		Class   string `json:"class"`
	}
	type entry struct {
		Username         string       `json:"username"`
		Password         string       `json:"password"`
		Name             string       `json:"name"`
		Surname          string       `json:"surname"`
		Role             string       `json:"role"`
		Class            string       `json:"class"`
		EnrolledSubjects []assignment `json:"enrolledSubjects"`
	}

	// Skip header row
	users := make([]entry, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) < 5 {
			log.Printf("Row %d has too few columns, skipping", i+2)
			continue
		}

		e := entry{
			Username: row[0],
			Password: row[1],
			Name:     row[2],
			Surname:  row[3],
			Role:     "student",
			Class:    row[4],
		}
		if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
			for _, subject := range strings.Split(row[5], ";") {
				e.EnrolledSubjects = append(e.EnrolledSubjects, assignment{Subject: strings.TrimSpace(subject), Class: e.Class})
			}
		}
		users = append(users, e)
	}

	log.Printf("Importing %d students...", len(users))

	client := resty.New()
	resp, err := client.R().
		SetAuthToken(*token).
		SetBody(map[string]interface{}{"users": users}).
		Post(*baseURL + "/auth/register/bulk")
	if err != nil {
		log.Fatalf("Bulk registration request failed: %v", err)
	}

	if resp.IsError() {
		log.Fatalf("Bulk registration failed: %s", resp.String())
	}

	log.Printf("Import completed: %s", resp.String())
}

package repl

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/antonioqueb/account-statement-report/internal/app"
)

// promptFilters runs the interactive filter wizard and returns the
// resulting request. Empty answers leave filters unset.
func promptFilters(reader *bufio.Reader, sessionID string) app.StatementRequest {
	req := app.StatementRequest{SessionID: sessionID}

	req.CustomerID = promptInt(reader, "Customer id (required): ")
	if projectID := promptInt(reader, "Project id (optional): "); projectID != 0 {
		req.ProjectID = &projectID
	}
	req.DateFrom = promptLine(reader, "Date from YYYY-MM-DD (optional): ")
	req.DateTo = promptLine(reader, "Date to   YYYY-MM-DD (optional): ")
	req.IncludeDraft = promptYesNo(reader, "Include draft quotations? [y/N]: ")
	req.IncludeFullyPaid = promptYesNo(reader, "Include fully paid orders? [y/N]: ")

	return req
}

func promptLine(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	raw, _ := reader.ReadString('\n')
	return strings.TrimSpace(raw)
}

func promptInt(reader *bufio.Reader, label string) int {
	raw := promptLine(reader, label)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Println("  Not a number, ignored.")
		return 0
	}
	return n
}

func promptYesNo(reader *bufio.Reader, label string) bool {
	raw := strings.ToLower(promptLine(reader, label))
	return raw == "y" || raw == "yes"
}

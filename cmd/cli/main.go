package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hausledger-cli",
		Short: "HausLedger CLI tool",
		Long:  `A command line interface for interacting with the HausLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the HausLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountsCmd(), trialBalanceCmd(), unitsCmd(), strategiesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Seed the default WEG chart of accounts",
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts/seed", nil)
		},
	})

	balanceCmd := &cobra.Command{
		Use:   "balance [account-id]",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0] + "/balance")
		},
	}
	cmd.AddCommand(balanceCmd)

	return cmd
}

func trialBalanceCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/reports/trial-balance"
			if asOf != "" {
				path += "?as_of=" + asOf
			}
			printTrialBalance(path)
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "Report date (YYYY-MM-DD), defaults to today")

	return cmd
}

func unitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Unit operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List units",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/units")
		},
	})

	return cmd
}

func strategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List allocation strategies",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/allocations/strategies")
		},
	}
}

func printTrialBalance(path string) {
	body := fetch(path)

	var report struct {
		AsOf string `json:"as_of"`
		Rows []struct {
			AccountCode string  `json:"account_code"`
			AccountName string  `json:"account_name"`
			Debit       *string `json:"debit"`
			Credit      *string `json:"credit"`
		} `json:"rows"`
		TotalDebits  string `json:"total_debits"`
		TotalCredits string `json:"total_credits"`
		IsBalanced   bool   `json:"is_balanced"`
	}
	if err := json.Unmarshal(body, &report); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Trial balance as of %s\n\n", report.AsOf)
	fmt.Printf("%-6s %-32s %12s %12s\n", "Code", "Account", "Debit", "Credit")
	for _, row := range report.Rows {
		fmt.Printf("%-6s %-32s %12s %12s\n",
			row.AccountCode, truncate(row.AccountName, 32), orDash(row.Debit), orDash(row.Credit))
	}
	fmt.Printf("\n%-39s %12s %12s\n", "Totals", report.TotalDebits, report.TotalCredits)
	if !report.IsBalanced {
		fmt.Println("\nWARNING: trial balance does not balance")
		os.Exit(1)
	}
}

func getJSON(path string) {
	printJSONBody(fetch(path))
}

func postJSON(path string, payload any) {
	client := &http.Client{Timeout: timeout}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		reqBody = bytes.NewReader(encoded)
	}

	resp, err := client.Post(baseURL+path, "application/json", reqBody)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	printJSONBody(body)
}

func fetch(path string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

func printJSONBody(body []byte) {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		fmt.Println(string(body))
		return
	}
	printJSON(parsed)
}

func printJSON(v any) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(encoded))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

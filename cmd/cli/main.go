package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "balances-cli",
		Short: "Balances CLI tool",
		Long:  `A command line interface for interacting with the balances API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the balances API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		createAccountCmd(),
		depositCmd(),
		withdrawCmd(),
		balanceCmd(),
		getTransactionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createAccountCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create-account",
		Short: "Create a new account",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]string{
				"id":   uuid.NewString(),
				"name": name,
			}
			postJSON("/api/v1/accounts", payload)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Account name")
	cmd.MarkFlagRequired("name")

	return cmd
}

func depositCmd() *cobra.Command {
	return transactionCmd("deposit", "Deposit funds into an account", "DEPOSIT")
}

func withdrawCmd() *cobra.Command {
	return transactionCmd("withdraw", "Withdraw funds from an account", "WITHDRAW")
}

func transactionCmd(use, short, direction string) *cobra.Command {
	var (
		accountID string
		amount    string
		txnID     string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Run: func(cmd *cobra.Command, args []string) {
			if txnID == "" {
				txnID = uuid.NewString()
			}
			payload := map[string]string{
				"id":         txnID,
				"account_id": accountID,
				"amount":     amount,
				"direction":  direction,
			}
			postJSON("/api/v1/transactions", payload)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount, e.g. 10.50")
	cmd.Flags().StringVar(&txnID, "id", "", "Transaction ID (generated when omitted)")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func balanceCmd() *cobra.Command {
	var (
		accountID string
		at        string
	)

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get an account balance, optionally at a point in time",
		Run: func(cmd *cobra.Command, args []string) {
			target := "/api/v1/accounts/" + accountID + "/balance"
			if at != "" {
				target += "?at=" + url.QueryEscape(at)
			}
			getJSON(target)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	cmd.Flags().StringVar(&at, "at", "", "RFC 3339 timestamp, e.g. 2024-05-01T12:00:00Z")
	cmd.MarkFlagRequired("account")

	return cmd
}

func getTransactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get-transaction <id>",
		Short: "Get a transaction by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/transactions/" + args[0])
		},
	}

	return cmd
}

func postJSON(path string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}

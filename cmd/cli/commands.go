package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/fxledger/internal/adapter/http/dto"
)

func periodsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{Use: "periods", Short: "Accounting periods"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List periods, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ListResponse[*dto.PeriodResponse]
			if err := opts.client().get(cmd.Context(), "/periods", nil, &resp); err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			rows := make([][]string, 0, len(resp.Items))
			for _, p := range resp.Items {
				rows = append(rows, []string{p.Label, p.Status, strconv.FormatBool(p.FxRateLocked), p.ID})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Period", "Status", "Rates locked", "ID"}, rows, nil))
			return nil
		},
	}

	var year, month int
	create := &cobra.Command{
		Use:   "create",
		Short: "Open the next period",
		RunE: func(cmd *cobra.Command, args []string) error {
			var period dto.PeriodResponse
			req := dto.CreatePeriodRequest{Year: year, Month: month}
			if err := opts.client().post(cmd.Context(), "/periods", req, &period); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Opened period %s (%s)", period.Label, period.ID))
			return nil
		},
	}
	create.Flags().IntVar(&year, "year", 0, "Calendar year")
	create.Flags().IntVar(&month, "month", 0, "Calendar month (1-12)")
	requireFlag(create, "year", "month")

	var yes bool
	closeCmd := &cobra.Command{
		Use:   "close <period-id>",
		Short: "Lock a period after its rates are locked and its journals posted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := opts.confirm(fmt.Sprintf("Close period %s? Locked periods accept no further postings.", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					return errors.New("aborted: pass --yes to close without a prompt")
				}
			}

			var period dto.PeriodResponse
			if err := opts.client().post(cmd.Context(), "/periods/"+url.PathEscape(args[0])+"/close", nil, &period); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Closed period %s", period.Label))
			return nil
		},
	}
	closeCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	lockRates := &cobra.Command{
		Use:   "lock-rates <period-id>",
		Short: "Lock every rate effective inside a period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.LockRatesResponse
			if err := opts.client().post(cmd.Context(), "/periods/"+url.PathEscape(args[0])+"/lock-rates", nil, &resp); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Locked %d rate(s)", resp.Locked))
			return nil
		},
	}

	cmd.AddCommand(list, create, closeCmd, lockRates)
	return cmd
}

func ratesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{Use: "rates", Short: "Exchange rates"}

	var req dto.CreateFxRateRequest
	var rate string
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", rate, err)
			}
			req.Rate = value

			var created dto.FxRateResponse
			if err := opts.client().post(cmd.Context(), "/fx-rates", req, &created); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Recorded %s/%s %s effective %s", created.FromCurrency, created.ToCurrency, created.Rate, created.EffectiveDate))
			return nil
		},
	}
	add.Flags().StringVar(&req.FromCurrency, "from", "", "Source currency")
	add.Flags().StringVar(&req.ToCurrency, "to", "", "Target currency")
	add.Flags().StringVar(&rate, "rate", "", "Rate as a decimal")
	add.Flags().StringVar(&req.EffectiveDate, "date", "", "Effective date (YYYY-MM-DD)")
	add.Flags().BoolVar(&req.IsLocked, "locked", false, "Record the rate as locked")
	requireFlag(add, "from", "to", "rate", "date")

	var from, to, asOf string
	latest := &cobra.Command{
		Use:   "latest",
		Short: "Show the rate in effect on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{"from": {from}, "to": {to}}
			if asOf != "" {
				query.Set("as_of", asOf)
			}

			var resp dto.FxRateResponse
			if err := opts.client().get(cmd.Context(), "/fx-rates/latest", query, &resp); err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s %s (effective %s)\n", resp.FromCurrency, resp.ToCurrency, resp.Rate, resp.EffectiveDate)
			return nil
		},
	}
	latest.Flags().StringVar(&from, "from", "", "Source currency")
	latest.Flags().StringVar(&to, "to", "", "Target currency")
	latest.Flags().StringVar(&asOf, "as-of", "", "Date (YYYY-MM-DD), default today")
	requireFlag(latest, "from", "to")

	cmd.AddCommand(add, latest)
	return cmd
}

func journalsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{Use: "journals", Short: "Journals and their lines"}

	var createReq dto.CreateJournalRequest
	var rateID string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a draft journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rateID != "" {
				createReq.FxRateID = &rateID
			}
			var journal dto.JournalResponse
			if err := opts.client().post(cmd.Context(), "/journals", createReq, &journal); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Created draft %s (%s)", journal.Reference, journal.ID))
			return nil
		},
	}
	create.Flags().StringVar(&createReq.Reference, "reference", "", "Reference, unique within the period")
	create.Flags().StringVar(&createReq.Description, "description", "", "Description")
	create.Flags().StringVar(&createReq.JournalDate, "date", "", "Journal date (YYYY-MM-DD)")
	create.Flags().StringVar(&createReq.PeriodID, "period", "", "Period ID")
	create.Flags().StringVar(&rateID, "rate-id", "", "Exchange rate used for base amounts")
	requireFlag(create, "reference", "date", "period")

	var lineReq dto.AddJournalLineRequest
	var debit, credit string
	addLine := &cobra.Command{
		Use:   "add-line <journal-id>",
		Short: "Add a debit or credit line to a draft journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if lineReq.DebitAmount, err = parseAmount(debit); err != nil {
				return fmt.Errorf("invalid debit: %w", err)
			}
			if lineReq.CreditAmount, err = parseAmount(credit); err != nil {
				return fmt.Errorf("invalid credit: %w", err)
			}

			var line dto.JournalLineResponse
			if err := opts.client().post(cmd.Context(), "/journals/"+url.PathEscape(args[0])+"/lines", lineReq, &line); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Added line %d (base %s / %s)", line.LineNumber, amount(line.DebitAmountBase), amount(line.CreditAmountBase)))
			return nil
		},
	}
	addLine.Flags().StringVar(&lineReq.AccountID, "account", "", "Account ID")
	addLine.Flags().IntVar(&lineReq.LineNumber, "line", 0, "Line number")
	addLine.Flags().StringVar(&lineReq.Description, "description", "", "Description")
	addLine.Flags().StringVar(&debit, "debit", "0", "Debit amount")
	addLine.Flags().StringVar(&credit, "credit", "0", "Credit amount")
	requireFlag(addLine, "account", "line")

	post := &cobra.Command{
		Use:   "post <journal-id>",
		Short: "Post a draft journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var journal dto.JournalResponse
			if err := opts.client().post(cmd.Context(), "/journals/"+url.PathEscape(args[0])+"/post", nil, &journal); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Posted %s: %s / %s", journal.Reference, amount(journal.TotalDebit), amount(journal.TotalCredit)))
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <journal-id>",
		Short: "Show a journal with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var journal dto.JournalResponse
			if err := opts.client().get(cmd.Context(), "/journals/"+url.PathEscape(args[0]), nil, &journal); err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), journal)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s  %s\n", journal.Reference, journal.JournalDate, journal.Status)
			rows := make([][]string, 0, len(journal.Lines))
			for _, l := range journal.Lines {
				rows = append(rows, []string{
					strconv.Itoa(l.LineNumber), l.AccountID, truncate(l.Description, 30),
					amount(l.DebitAmount), amount(l.CreditAmount), amount(l.DebitAmountBase), amount(l.CreditAmountBase),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Account", "Description", "Debit", "Credit", "Debit base", "Credit base"},
				rows, map[int]bool{3: true, 4: true, 5: true, 6: true},
			))
			return nil
		},
	}

	cmd.AddCommand(create, addLine, post, show)
	return cmd
}

func reportsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{Use: "reports", Short: "Ledger reports"}

	var periodID string
	trialBalance := &cobra.Command{
		Use:   "trial-balance",
		Short: "Trial balance of a period, default the latest",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if periodID != "" {
				query.Set("period_id", periodID)
			}

			var tb dto.TrialBalanceResponse
			if err := opts.client().get(cmd.Context(), "/reports/trial-balance", query, &tb); err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), tb)
			}

			out := cmd.OutOrStdout()
			if tb.Period != nil {
				fmt.Fprintf(out, "Trial balance %s (%s)\n", tb.Period.Label, tb.Period.Status)
			}
			rows := make([][]string, 0, len(tb.Rows)+1)
			for _, r := range tb.Rows {
				rows = append(rows, []string{
					r.AccountCode, truncate(r.AccountName, 30), r.Currency,
					amount(r.DebitBalance), amount(r.CreditBalance), amount(r.DebitBalanceBase), amount(r.CreditBalanceBase),
				})
			}
			rows = append(rows, []string{
				"", "Total", "",
				amount(tb.TotalDebitBalance), amount(tb.TotalCreditBalance), amount(tb.TotalDebitBalanceBase), amount(tb.TotalCreditBalanceBase),
			})
			fmt.Fprintln(out, renderTable(
				[]string{"Code", "Account", "Ccy", "Debit", "Credit", "Debit base", "Credit base"},
				rows, map[int]bool{3: true, 4: true, 5: true, 6: true},
			))

			if tb.Balanced {
				printSuccess(out, "Balanced in base currency")
			} else {
				printFailure(out, "Base currency totals differ")
			}
			return nil
		},
	}
	trialBalance.Flags().StringVar(&periodID, "period", "", "Period ID")

	var accountID, from, to string
	generalLedger := &cobra.Command{
		Use:   "general-ledger",
		Short: "Posted lines with running balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			for key, value := range map[string]string{"account_id": accountID, "from": from, "to": to} {
				if value != "" {
					query.Set(key, value)
				}
			}

			var gl dto.GeneralLedgerResponse
			if err := opts.client().get(cmd.Context(), "/reports/general-ledger", query, &gl); err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), gl)
			}

			rows := make([][]string, 0, len(gl.Rows))
			for _, r := range gl.Rows {
				rows = append(rows, []string{
					r.AccountCode, r.JournalDate, r.Reference, strconv.Itoa(r.LineNumber),
					amount(r.DebitAmount), amount(r.CreditAmount), amount(r.RunningBalance), amount(r.RunningBalanceBase),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Account", "Date", "Reference", "#", "Debit", "Credit", "Balance", "Balance base"},
				rows, map[int]bool{4: true, 5: true, 6: true, 7: true},
			))
			return nil
		},
	}
	generalLedger.Flags().StringVar(&accountID, "account", "", "Account ID")
	generalLedger.Flags().StringVar(&from, "from", "", "From date (YYYY-MM-DD)")
	generalLedger.Flags().StringVar(&to, "to", "", "To date (YYYY-MM-DD)")

	cmd.AddCommand(trialBalance, generalLedger)
	return cmd
}

func ledgerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{Use: "ledger", Short: "Ledger operations"}

	consistency := &cobra.Command{
		Use:   "consistency",
		Short: "Check that posted debits equal credits ledger-wide",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ConsistencyResponse
			err := opts.client().get(cmd.Context(), "/ledger/consistency", nil, &resp)

			var apiErr *apiError
			if err != nil && !(errors.As(err, &apiErr) && apiErr.Status == http.StatusUnprocessableEntity) {
				return err
			}
			if opts.json {
				if jsonErr := printJSON(cmd.OutOrStdout(), resp); jsonErr != nil {
					return jsonErr
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Debit %s / Credit %s, base %s / %s\n",
					amount(resp.TotalDebit), amount(resp.TotalCredit), amount(resp.TotalDebitBase), amount(resp.TotalCreditBase))
			}

			if err != nil {
				return errors.New("consistency check FAILED")
			}
			printSuccess(cmd.OutOrStdout(), "Consistency check PASSED")
			return nil
		},
	}

	cmd.AddCommand(consistency)
	return cmd
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func accountsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{Use: "accounts", Short: "Chart of accounts"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts by code",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ListResponse[*dto.AccountResponse]
			if err := opts.client().get(cmd.Context(), "/accounts", url.Values{"limit": {"1000"}}, &resp); err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			rows := make([][]string, 0, len(resp.Items))
			for _, a := range resp.Items {
				rows = append(rows, []string{a.Code, truncate(a.Name, 30), a.AccountType, a.Currency, a.ID})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Code", "Name", "Type", "Ccy", "ID"}, rows, nil))
			return nil
		},
	}

	var req dto.CreateAccountRequest
	var parentID string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if parentID != "" {
				req.ParentID = &parentID
			}
			var account dto.AccountResponse
			if err := opts.client().post(cmd.Context(), "/accounts", req, &account); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Created account %s %s (%s)", account.Code, account.Name, account.ID))
			return nil
		},
	}
	create.Flags().StringVar(&req.Code, "code", "", "Account code")
	create.Flags().StringVar(&req.Name, "name", "", "Account name")
	create.Flags().StringVar(&req.AccountType, "type", "", "Asset, Liability, Equity, Income, Expense or Other")
	create.Flags().StringVar(&req.Currency, "currency", "", "Account currency")
	create.Flags().StringVar(&parentID, "parent", "", "Parent account ID")
	create.Flags().BoolVar(&req.IsBank, "bank", false, "Mark as a bank account")
	create.Flags().BoolVar(&req.IsCapital, "capital", false, "Mark as a capital account")
	requireFlag(create, "code", "name", "type", "currency")

	cmd.AddCommand(list, create)
	return cmd
}

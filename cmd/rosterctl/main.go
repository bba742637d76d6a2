// Command rosterctl browses the contract roster from a terminal
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/sjperalta/vehifin-api/internal/client"
	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/sjperalta/vehifin-api/internal/roster"
)

const usage = `usage: rosterctl [-api URL] <command> [flags]

commands:
  login  -u USER [-p PASSWORD]   store a bearer token
  logout                         revoke and forget the token
  list   [-search Q] [-status S] [-company C] [-sort date|customer|amount|company]
  show   <contract id>
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "rosterctl:", err)
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "run `rosterctl login` to sign in again")
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("rosterctl", flag.ContinueOnError)
	apiURL := global.String("api", envOr("VEHIFIN_API_URL", "http://localhost:8080/api/v1"), "API base URL")
	tokenPath := global.String("token-file", os.Getenv("VEHIFIN_TOKEN_FILE"), "where the token is kept")
	global.Usage = func() { fmt.Fprint(global.Output(), usage) }
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("missing command")
	}

	if *tokenPath == "" {
		p, err := client.DefaultTokenPath()
		if err != nil {
			return err
		}
		*tokenPath = p
	}
	c := client.New(*apiURL, client.NewFileTokenStore(*tokenPath))

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "login":
		return login(ctx, c, rest, out)
	case "logout":
		return c.Logout(ctx)
	case "list":
		return list(ctx, c, rest, out)
	case "show":
		if len(rest) != 1 {
			return errors.New("show needs exactly one contract id")
		}
		return show(ctx, c, rest[0], out)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func login(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", os.Getenv("VEHIFIN_USERNAME"), "username")
	password := fs.String("p", os.Getenv("VEHIFIN_PASSWORD"), "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return errors.New("username and password are required")
	}

	token, err := c.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Logged in as %s\n", token.Username)
	return nil
}

func list(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	params := roster.DefaultViewParameters()
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.StringVar(&params.SearchQuery, "search", "", "customer, contract number, vehicle or company")
	fs.StringVar(&params.StatusFilter, "status", roster.FilterAll, "status filter")
	fs.StringVar(&params.CompanyFilter, "company", roster.FilterAll, "company filter")
	sortBy := fs.String("sort", string(roster.SortByDate), "date, customer, amount or company")
	if err := fs.Parse(args); err != nil {
		return err
	}
	params.SortBy = roster.SortKey(*sortBy)

	session := roster.NewSession(nil)
	session.SetParams(params)
	if _, err := c.Refresh(ctx, session); err != nil {
		return err
	}

	return printRoster(out, session.View())
}

func show(ctx context.Context, c *client.Client, id string, out io.Writer) error {
	detail, err := c.GetContract(ctx, id)
	if err != nil {
		return err
	}
	return printDetail(out, detail)
}

func printRoster(out io.Writer, contracts []models.ContractSummary) error {
	if len(contracts) == 0 {
		_, err := fmt.Fprintln(out, "No contracts found")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCONTRACT\tCUSTOMER\tVEHICLE\tCOMPANY\tSTATUS\tDATE\tOUTSTANDING")
	for _, c := range contracts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.ContractNumber, c.CustomerName, c.VehicleRegistration, c.CompanyName,
			c.Status, c.ContractDate, c.OutstandingAmount.StringFixed(2))
	}
	return w.Flush()
}

func printDetail(out io.Writer, d *client.ContractDetail) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Contract\t%s (%s)\n", d.ContractNumber, d.Status)
	fmt.Fprintf(w, "Date\t%s\n", d.ContractDate)
	fmt.Fprintf(w, "Company\t%s\n", d.CompanyName)
	fmt.Fprintf(w, "Customer\t%s, %s\n", d.Customer.Name, d.Customer.Phone)
	fmt.Fprintf(w, "Guarantor\t%s, %s\n", d.Guarantor.Name, d.Guarantor.Phone)
	fmt.Fprintf(w, "Vehicle\t%s %s %d, %s\n", d.Vehicle.Make, d.Vehicle.Model, d.Vehicle.Year, d.Vehicle.RegistrationNumber)
	fmt.Fprintf(w, "Loan\t%s at %.2f%% for %d months, EMI %s\n",
		d.Loan.LoanAmount.StringFixed(2), d.Loan.InterestRate, d.Loan.TenureMonths, d.Loan.EMIAmount.StringFixed(2))
	fmt.Fprintf(w, "Outstanding\t%s\n\n", d.Loan.OutstandingAmount.StringFixed(2))

	fmt.Fprintln(w, "S.NO\tEMI\tDUE\tRECEIVED\tDATE RECEIVED\tDELAY\tSTATE")
	for _, row := range d.PaymentSchedule {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Sno, row.EMIAmount.StringFixed(2), row.DueDate, row.ReceivedDisplay,
			row.DateReceivedDisplay, row.DelayDisplay, row.State)
	}

	s := d.PaymentSummary
	fmt.Fprintf(w, "\nTotal EMIs\t%d\n", s.CountTotal)
	fmt.Fprintf(w, "EMIs Paid\t%d\n", s.CountPaid)
	fmt.Fprintf(w, "EMIs Pending\t%d\n", s.CountPending)
	fmt.Fprintf(w, "Total Delays\t%d days\n", s.TotalDelayDays)
	fmt.Fprintf(w, "Received\t%s of %s\n", s.TotalReceived.StringFixed(2), s.TotalEMI.StringFixed(2))
	return w.Flush()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

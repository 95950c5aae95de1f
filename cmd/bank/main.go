package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	bankapp "bank/internal/app/bank"
	"bank/internal/auth"
	"bank/internal/codec"
	"bank/internal/config"
	"bank/internal/console"
	"bank/internal/domain"
	"bank/internal/recovery"
	accountsfile "bank/internal/repository/accounts_repo/flatfile"
	journalfile "bank/internal/repository/journal_repo/flatfile"
)

const maxOperationAmount = 1_000_000

func main() {
	cfg, err := config.LoadConfig(config.DefaultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the menu, so the structured log goes to a file.
	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.OutputPaths = []string{cfg.LogFilePath}
	zapConfig.ErrorOutputPaths = []string{cfg.LogFilePath}

	appLogger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create zap logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()
	appLogger.Info("Banking System starting...")

	accounts := accountsfile.NewAccountRepository(cfg.AccountFilePath)
	journal := journalfile.NewJournalRepository(cfg.JournalPath)

	ctx := context.Background()

	resolver := recovery.NewResolver(accounts, journal,
		appLogger.With(zap.String("component", "TransferResolver")))
	if err := resolver.Run(ctx); err != nil {
		appLogger.Fatal("Failed to resolve pending transfers", zap.Error(err))
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	guard := auth.NewGuard(accounts, hasher, cfg.MaxLoginAttempts,
		appLogger.With(zap.String("component", "Guard")))

	service := bankapp.NewBankService(
		accounts,
		journal,
		guard,
		hasher,
		cfg.MinPasswordLength,
		cfg.StatementDir,
		appLogger.With(zap.String("component", "BankService")),
	)
	appLogger.Info("Bank Service initialized.")

	in := console.NewInput()

	fmt.Println("=== Welcome to Banking System ===")
	for {
		fmt.Println()
		fmt.Println("=== Main Menu ===")
		fmt.Println("1. Create New Account")
		fmt.Println("2. Deposit Money")
		fmt.Println("3. Withdraw Money")
		fmt.Println("4. Check Balance")
		fmt.Println("5. Transfer Funds")
		fmt.Println("6. Display All Accounts")
		fmt.Println("7. Generate Statement")
		fmt.Println("8. Exit")

		choice, err := in.ReadInt("Enter your choice: ", 1, 8)
		if err != nil {
			// stdin closed; leave like a clean exit
			return
		}

		switch choice {
		case 1:
			runCreateAccount(ctx, service, in, cfg.MinPasswordLength)
		case 2:
			runDeposit(ctx, service, in)
		case 3:
			runWithdraw(ctx, service, in)
		case 4:
			runCheckBalance(ctx, service, in)
		case 5:
			runTransfer(ctx, service, in)
		case 6:
			runDisplayAll(ctx, service)
		case 7:
			runStatement(ctx, service, in)
		case 8:
			fmt.Println("Thank you for using our banking system!")
			appLogger.Info("Banking System shutting down.")
			return
		}
	}
}

func runCreateAccount(ctx context.Context, service bankapp.BankService, in *console.Input, minPasswordLength int) {
	fmt.Println("\n=== Create New Account ===")

	name, err := in.ReadLine("Enter account holder name: ", codec.NameCapacity)
	if err != nil {
		return
	}
	email, err := in.ReadEmail("Enter email address: ", codec.EmailCapacity)
	if err != nil {
		return
	}
	phone, err := in.ReadPhone("Enter phone number: ", codec.PhoneCapacity)
	if err != nil {
		return
	}
	password, err := in.ReadPassword(fmt.Sprintf("Set account password (min %d characters): ", minPasswordLength))
	if err != nil {
		return
	}
	confirm, err := in.ReadPassword("Confirm password: ")
	if err != nil {
		return
	}

	account, err := service.CreateAccount(ctx, bankapp.CreateAccountInput{
		Name:            name,
		Email:           email,
		Phone:           phone,
		Password:        password,
		PasswordConfirm: confirm,
	})
	if err != nil {
		printError(err)
		return
	}

	fmt.Println("\nAccount created successfully!")
	fmt.Printf("Account Number: %d\n", account.Number)
	fmt.Printf("Account Holder: %s\n", account.Name)
	fmt.Printf("Initial Balance: $%s\n", account.Balance.StringFixed(2))
	fmt.Println("Please remember your account number and password!")
}

func runDeposit(ctx context.Context, service bankapp.BankService, in *console.Input) {
	fmt.Println("\n=== Deposit Money ===")

	number, err := in.ReadInt("Enter account number: ", domain.MinAccountNumber, domain.MaxAccountNumber)
	if err != nil {
		return
	}
	amount, err := in.ReadAmount("Enter amount to deposit: $",
		decimal.NewFromFloat(0.01), decimal.NewFromInt(maxOperationAmount))
	if err != nil {
		return
	}

	account, err := service.Deposit(ctx, number, amount, in.ReadPassword)
	if err != nil {
		printError(err)
		return
	}

	fmt.Println("Deposit successful!")
	fmt.Printf("New balance: $%s\n", account.Balance.StringFixed(2))
}

func runWithdraw(ctx context.Context, service bankapp.BankService, in *console.Input) {
	fmt.Println("\n=== Withdraw Money ===")

	number, err := in.ReadInt("Enter account number: ", domain.MinAccountNumber, domain.MaxAccountNumber)
	if err != nil {
		return
	}
	amount, err := in.ReadAmount("Enter amount to withdraw: $",
		decimal.NewFromFloat(0.01), decimal.NewFromInt(maxOperationAmount))
	if err != nil {
		return
	}

	account, err := service.Withdraw(ctx, number, amount, in.ReadPassword)
	if err != nil {
		printError(err)
		return
	}

	fmt.Println("Withdrawal successful!")
	fmt.Printf("New balance: $%s\n", account.Balance.StringFixed(2))
}

func runCheckBalance(ctx context.Context, service bankapp.BankService, in *console.Input) {
	fmt.Println("\n=== Check Balance ===")

	number, err := in.ReadInt("Enter account number: ", domain.MinAccountNumber, domain.MaxAccountNumber)
	if err != nil {
		return
	}

	account, err := service.CheckBalance(ctx, number, in.ReadPassword)
	if err != nil {
		printError(err)
		return
	}

	fmt.Println("\nAccount Information:")
	fmt.Printf("Account Number: %d\n", account.Number)
	fmt.Printf("Account Holder: %s\n", account.Name)
	fmt.Printf("Email: %s\n", account.Email)
	fmt.Printf("Phone: %s\n", account.Phone)
	fmt.Printf("Current Balance: $%s\n", account.Balance.StringFixed(2))
	fmt.Printf("Last Accessed: %s\n", account.LastAccessed.UTC().Format("2006-01-02 15:04:05"))
}

func runTransfer(ctx context.Context, service bankapp.BankService, in *console.Input) {
	fmt.Println("\n=== Transfer Funds ===")

	from, err := in.ReadInt("Enter your account number: ", domain.MinAccountNumber, domain.MaxAccountNumber)
	if err != nil {
		return
	}
	to, err := in.ReadInt("Enter destination account number: ", domain.MinAccountNumber, domain.MaxAccountNumber)
	if err != nil {
		return
	}
	amount, err := in.ReadAmount("Enter amount to transfer: $",
		decimal.NewFromFloat(0.01), decimal.NewFromInt(maxOperationAmount))
	if err != nil {
		return
	}

	confirmed := false
	err = service.Transfer(ctx, from, to, amount, in.ReadPassword,
		func(from, to int, amount decimal.Decimal) bool {
			ok, err := in.Confirm(fmt.Sprintf("Transfer $%s from account %d to account %d? (y/n): ",
				amount.StringFixed(2), from, to))
			confirmed = err == nil && ok
			return confirmed
		})
	if err != nil {
		printError(err)
		return
	}
	if !confirmed {
		fmt.Println("Transfer cancelled.")
		return
	}

	fmt.Println("Transfer successful!")
	fmt.Printf("Transferred $%s from account %d to account %d\n", amount.StringFixed(2), from, to)
}

func runDisplayAll(ctx context.Context, service bankapp.BankService) {
	fmt.Println("\n=== All Accounts ===")
	fmt.Printf("\n%-15s %-20s %-15s\n", "Account Number", "Account Holder", "Balance")
	fmt.Println("-------------------------------------------------")

	count := 0
	err := service.ListAccounts(ctx, func(account *domain.Account) error {
		fmt.Printf("%-15d %-20s $%-14s\n", account.Number, account.Name, account.Balance.StringFixed(2))
		count++
		return nil
	})
	if err != nil {
		printError(err)
		return
	}

	if count == 0 {
		fmt.Println("No accounts found.")
	} else {
		fmt.Printf("\nTotal accounts: %d\n", count)
	}
}

func runStatement(ctx context.Context, service bankapp.BankService, in *console.Input) {
	fmt.Println("\n=== Generate Statement ===")

	number, err := in.ReadInt("Enter account number: ", domain.MinAccountNumber, domain.MaxAccountNumber)
	if err != nil {
		return
	}

	path, err := service.GenerateStatement(ctx, number, in.ReadPassword)
	if err != nil {
		printError(err)
		return
	}

	fmt.Printf("Statement written to %s\n", path)
}

func printError(err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		fmt.Println("Account not found!")
	case errors.Is(err, domain.ErrAccountLocked):
		fmt.Println("Too many failed attempts. Authentication aborted.")
	case errors.Is(err, domain.ErrAuthenticationFailed):
		fmt.Println("Authentication failed!")
	case errors.Is(err, domain.ErrInsufficientFunds):
		fmt.Println("Insufficient funds!")
	case errors.Is(err, domain.ErrSelfTransfer):
		fmt.Println("Cannot transfer to the same account!")
	case errors.Is(err, domain.ErrInvalidAmount):
		fmt.Println("Invalid amount!")
	case errors.Is(err, domain.ErrWeakPassword):
		fmt.Printf("Password too short: %v\n", err)
	case errors.Is(err, domain.ErrPasswordMismatch):
		fmt.Println("Passwords do not match!")
	case errors.Is(err, domain.ErrStoreUnavailable):
		fmt.Printf("Storage error: %v\n", err)
	default:
		fmt.Printf("Error: %v\n", err)
	}
}

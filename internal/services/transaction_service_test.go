package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("plain_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestBankAccount(t, db, user.ID)

		tx, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID: account.ID,
			Name:          "Lunch",
			Amount:        1500,
			Date:          time.Now(),
			Type:          models.TransactionTypeExpense,
		})
		testutil.AssertNoError(t, err)

		if tx.ID == 0 {
			t.Fatal("expected non-zero transaction ID")
		}
		if tx.RelatedTransactionID != nil || tx.InstallmentGroupID != nil {
			t.Error("plain transaction should have no pair or group")
		}
	})

	t.Run("invalid_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID: 99999,
			Name:          "Lunch",
			Amount:        1500,
			Date:          time.Now(),
			Type:          models.TransactionTypeExpense,
		})
		testutil.AssertAppError(t, err, "BANK_ACCOUNT_NOT_FOUND")
	})

	t.Run("other_users_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		otherAccount := testutil.CreateTestBankAccount(t, db, other.ID)

		_, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID: otherAccount.ID,
			Name:          "Sneaky",
			Amount:        100,
			Date:          time.Now(),
			Type:          models.TransactionTypeExpense,
		})
		testutil.AssertAppError(t, err, "BANK_ACCOUNT_NOT_FOUND")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestBankAccount(t, db, user.ID)

		_, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID: account.ID,
			Name:          "Weird",
			Amount:        100,
			Date:          time.Now(),
			Type:          "refund",
		})
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})
}

func TestCreateTransfer(t *testing.T) {
	t.Run("creates_linked_pair", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestBankAccount(t, db, user.ID)
		dest := testutil.CreateTestBankAccount(t, db, user.ID)

		tx, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID:   source.ID,
			ToBankAccountID: &dest.ID,
			Name:            "Savings move",
			Amount:          20000,
			Date:            time.Now(),
			Type:            models.TransactionTypeTransfer,
		})
		testutil.AssertNoError(t, err)

		if tx.Type != models.TransactionTypeExpense {
			t.Errorf("returned leg should be the expense leg, got %s", tx.Type)
		}
		if tx.RelatedTransactionID == nil {
			t.Fatal("expense leg should link to the income leg")
		}

		var pair models.Transaction
		testutil.AssertNoError(t, db.First(&pair, *tx.RelatedTransactionID).Error)
		if pair.Type != models.TransactionTypeIncome {
			t.Errorf("pair should be the income leg, got %s", pair.Type)
		}
		if pair.BankAccountID != dest.ID {
			t.Errorf("pair should land on the destination account")
		}
		if pair.RelatedTransactionID == nil || *pair.RelatedTransactionID != tx.ID {
			t.Error("pair should link back to the expense leg")
		}
		if pair.Amount != tx.Amount {
			t.Error("both legs should carry the same amount")
		}
	})

	t.Run("legs_carry_no_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestBankAccount(t, db, user.ID)
		dest := testutil.CreateTestBankAccount(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		tx, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID:   source.ID,
			ToBankAccountID: &dest.ID,
			CategoryID:      &category.ID,
			Name:            "Stash",
			Amount:          5000,
			Date:            time.Now(),
			Type:            models.TransactionTypeTransfer,
		})
		testutil.AssertNoError(t, err)

		if tx.CategoryID != nil {
			t.Error("expense leg should not keep the requested category")
		}
		var pair models.Transaction
		testutil.AssertNoError(t, db.First(&pair, *tx.RelatedTransactionID).Error)
		if pair.CategoryID != nil {
			t.Error("income leg should not keep the requested category")
		}

		// Category-filtered listings never surface transfer legs.
		page, err := svcs.transactions.GetUserTransactions(user.ID, nil, pagination.PageRequest{}, TransactionFilter{CategoryIDs: []uint{category.ID}})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 0 {
			t.Errorf("expected no category matches, got %d", page.TotalItems)
		}
	})

	t.Run("same_account_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestBankAccount(t, db, user.ID)

		_, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID:   account.ID,
			ToBankAccountID: &account.ID,
			Name:            "Loop",
			Amount:          100,
			Date:            time.Now(),
			Type:            models.TransactionTypeTransfer,
		})
		testutil.AssertAppError(t, err, "SAME_ACCOUNT_TRANSFER")
	})

	t.Run("missing_destination", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestBankAccount(t, db, user.ID)

		_, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID: account.ID,
			Name:          "Nowhere",
			Amount:        100,
			Date:          time.Now(),
			Type:          models.TransactionTypeTransfer,
		})
		testutil.AssertAppError(t, err, "MISSING_TRANSFER_ACCOUNT")
	})

	t.Run("transfer_with_installments_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestBankAccount(t, db, user.ID)
		dest := testutil.CreateTestBankAccount(t, db, user.ID)

		_, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID:   source.ID,
			ToBankAccountID: &dest.ID,
			Name:            "Split move",
			Amount:          100,
			Date:            time.Now(),
			Type:            models.TransactionTypeTransfer,
			Installments:    3,
		})
		testutil.AssertAppError(t, err, "TRANSFER_INSTALLMENTS")
	})
}

func TestCreateInstallments(t *testing.T) {
	t.Run("splits_total_across_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestBankAccount(t, db, user.ID)

		total := int64(10000)
		first := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
		tx, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID:        account.ID,
			Name:                 "Laptop",
			Amount:               total,
			Date:                 first,
			Type:                 models.TransactionTypeExpense,
			Installments:         3,
			FirstInstallmentDate: &first,
		})
		testutil.AssertNoError(t, err)

		if tx.InstallmentGroupID == nil {
			t.Fatal("expected an installment group ID")
		}

		var rows []models.Transaction
		err = db.Where("installment_group_id = ?", *tx.InstallmentGroupID).
			Order("installment_number ASC").Find(&rows).Error
		testutil.AssertNoError(t, err)

		if len(rows) != 3 {
			t.Fatalf("expected 3 installments, got %d", len(rows))
		}

		var sum int64
		for i, row := range rows {
			sum += row.Amount
			if row.InstallmentNumber == nil || *row.InstallmentNumber != i+1 {
				t.Errorf("installment %d has wrong number", i)
			}
			if row.InstallmentTotalAmount == nil || *row.InstallmentTotalAmount != total {
				t.Errorf("installment %d should record the group total", i)
			}
			wantMonth := time.January + time.Month(i)
			if row.Date.Month() != wantMonth {
				t.Errorf("installment %d expected month %s, got %s", i, wantMonth, row.Date.Month())
			}
		}
		if sum != total {
			t.Errorf("installments should sum to %d, got %d", total, sum)
		}
		// 10000 / 3 leaves a 1-cent remainder on the first part.
		if rows[0].Amount != 3334 || rows[1].Amount != 3333 {
			t.Errorf("remainder should go to the earliest installment, got %d/%d/%d",
				rows[0].Amount, rows[1].Amount, rows[2].Amount)
		}
	})

	t.Run("clamps_to_last_day_of_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestBankAccount(t, db, user.ID)

		first := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
		tx, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID:        account.ID,
			Name:                 "Sofa",
			Amount:               30000,
			Date:                 first,
			Type:                 models.TransactionTypeExpense,
			Installments:         3,
			FirstInstallmentDate: &first,
		})
		testutil.AssertNoError(t, err)

		var rows []models.Transaction
		err = db.Where("installment_group_id = ?", *tx.InstallmentGroupID).
			Order("installment_number ASC").Find(&rows).Error
		testutil.AssertNoError(t, err)

		if d := rows[1].Date; d.Month() != time.February || d.Day() != 28 {
			t.Errorf("Jan 31 + 1 month should clamp to Feb 28, got %s", d.Format("2006-01-02"))
		}
		if d := rows[2].Date; d.Month() != time.March || d.Day() != 31 {
			t.Errorf("Jan 31 + 2 months should be Mar 31, got %s", d.Format("2006-01-02"))
		}
	})

	t.Run("too_many_installments", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestBankAccount(t, db, user.ID)

		_, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID: account.ID,
			Name:          "Forever",
			Amount:        100,
			Date:          time.Now(),
			Type:          models.TransactionTypeExpense,
			Installments:  121,
		})
		testutil.AssertAppError(t, err, "INVALID_INSTALLMENT_COUNT")
	})
}

func TestGetUserTransactions(t *testing.T) {
	t.Run("transfer_visibility", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestBankAccount(t, db, user.ID)
		dest := testutil.CreateTestBankAccount(t, db, user.ID)

		testutil.CreateTestTransaction(t, db, user.ID, source.ID, models.TransactionTypeIncome, 5000)
		testutil.CreateTestTransaction(t, db, user.ID, source.ID, models.TransactionTypeExpense, 1000)
		_, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID:   source.ID,
			ToBankAccountID: &dest.ID,
			Name:            "Move",
			Amount:          2000,
			Date:            time.Now(),
			Type:            models.TransactionTypeTransfer,
		})
		testutil.AssertNoError(t, err)

		// Default listing hides the income leg of the transfer.
		page, err := svcs.transactions.GetUserTransactions(user.ID, nil, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 3 {
			t.Errorf("expected 3 visible transactions, got %d", page.TotalItems)
		}

		// Filtering by transfer returns only the expense leg.
		transferType := models.TransactionTypeTransfer
		page, err = svcs.transactions.GetUserTransactions(user.ID, nil, pagination.PageRequest{}, TransactionFilter{Type: &transferType})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 transfer, got %d", page.TotalItems)
		}

		// Filtering by income excludes transfer legs.
		incomeType := models.TransactionTypeIncome
		page, err = svcs.transactions.GetUserTransactions(user.ID, nil, pagination.PageRequest{}, TransactionFilter{Type: &incomeType})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 income transaction, got %d", page.TotalItems)
		}
	})

	t.Run("month_and_amount_filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestBankAccount(t, db, user.ID)

		jan := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
		feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestTransactionAt(t, db, user.ID, account.ID, models.TransactionTypeExpense, 1000, jan)
		testutil.CreateTestTransactionAt(t, db, user.ID, account.ID, models.TransactionTypeExpense, 9000, feb)

		month, year := 0, 2026
		page, err := svcs.transactions.GetUserTransactions(user.ID, nil, pagination.PageRequest{}, TransactionFilter{Month: &month, Year: &year})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 January transaction, got %d", page.TotalItems)
		}

		minAmount := int64(5000)
		page, err = svcs.transactions.GetUserTransactions(user.ID, nil, pagination.PageRequest{}, TransactionFilter{MinAmount: &minAmount})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 transaction above 5000, got %d", page.TotalItems)
		}
	})

	t.Run("name_filter_ignores_case", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestBankAccount(t, db, user.ID)

		tx := testutil.CreateTestTransaction(t, db, user.ID, account.ID, models.TransactionTypeExpense, 4500)
		testutil.AssertNoError(t, db.Model(tx).Update("name", "Monthly RENT payment").Error)
		testutil.CreateTestTransaction(t, db, user.ID, account.ID, models.TransactionTypeExpense, 1200)

		page, err := svcs.transactions.GetUserTransactions(user.ID, nil, pagination.PageRequest{}, TransactionFilter{Name: "rent"})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 match for lowercase search, got %d", page.TotalItems)
		}
		if len(page.Data) == 1 && page.Data[0].ID != tx.ID {
			t.Error("wrong transaction matched the name filter")
		}
	})

	t.Run("pagination", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestBankAccount(t, db, user.ID)

		for i := 0; i < 5; i++ {
			testutil.CreateTestTransaction(t, db, user.ID, account.ID, models.TransactionTypeExpense, int64(100*(i+1)))
		}

		page, err := svcs.transactions.GetUserTransactions(user.ID, nil, pagination.PageRequest{Page: 2, PageSize: 2}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 5 {
			t.Errorf("expected total 5, got %d", page.TotalItems)
		}
		if len(page.Data) != 2 {
			t.Errorf("expected 2 items on page 2, got %d", len(page.Data))
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("transfer_pair_updates_in_lockstep", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestBankAccount(t, db, user.ID)
		dest := testutil.CreateTestBankAccount(t, db, user.ID)

		tx, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID:   source.ID,
			ToBankAccountID: &dest.ID,
			Name:            "Move",
			Amount:          2000,
			Date:            time.Now(),
			Type:            models.TransactionTypeTransfer,
		})
		testutil.AssertNoError(t, err)

		newAmount := int64(3500)
		_, err = svcs.transactions.UpdateTransaction(user.ID, tx.ID, UpdateTransactionInput{
			Name:   "Bigger move",
			Amount: &newAmount,
		})
		testutil.AssertNoError(t, err)

		var pair models.Transaction
		testutil.AssertNoError(t, db.First(&pair, *tx.RelatedTransactionID).Error)
		if pair.Amount != 3500 || pair.Name != "Bigger move" {
			t.Errorf("pair leg should mirror the update, got amount=%d name=%q", pair.Amount, pair.Name)
		}
	})

	t.Run("transfer_leg_rejects_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestBankAccount(t, db, user.ID)
		dest := testutil.CreateTestBankAccount(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		tx, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID:   source.ID,
			ToBankAccountID: &dest.ID,
			Name:            "Move",
			Amount:          2000,
			Date:            time.Now(),
			Type:            models.TransactionTypeTransfer,
		})
		testutil.AssertNoError(t, err)

		_, err = svcs.transactions.UpdateTransaction(user.ID, tx.ID, UpdateTransactionInput{CategoryID: &category.ID})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("installment_members_not_editable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestBankAccount(t, db, user.ID)

		tx, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID: account.ID,
			Name:          "Phone",
			Amount:        60000,
			Date:          time.Now(),
			Type:          models.TransactionTypeExpense,
			Installments:  6,
		})
		testutil.AssertNoError(t, err)

		newAmount := int64(1)
		_, err = svcs.transactions.UpdateTransaction(user.ID, tx.ID, UpdateTransactionInput{Amount: &newAmount})
		testutil.AssertAppError(t, err, "INSTALLMENT_NOT_EDITABLE")

		// Even a plain rename is rejected on a group member.
		_, err = svcs.transactions.UpdateTransaction(user.ID, tx.ID, UpdateTransactionInput{Name: "Phone upgrade"})
		testutil.AssertAppError(t, err, "INSTALLMENT_NOT_EDITABLE")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svcs.transactions.UpdateTransaction(user.ID, 99999, UpdateTransactionInput{Name: "x"})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("deletes_transfer_pair", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		source := testutil.CreateTestBankAccount(t, db, user.ID)
		dest := testutil.CreateTestBankAccount(t, db, user.ID)

		tx, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID:   source.ID,
			ToBankAccountID: &dest.ID,
			Name:            "Move",
			Amount:          2000,
			Date:            time.Now(),
			Type:            models.TransactionTypeTransfer,
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svcs.transactions.DeleteTransaction(user.ID, tx.ID))

		var count int64
		db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 0 {
			t.Errorf("both legs should be deleted, %d rows remain", count)
		}
	})

	t.Run("deletes_whole_installment_group", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestBankAccount(t, db, user.ID)

		tx, err := svcs.transactions.CreateTransaction(user.ID, nil, CreateTransactionInput{
			BankAccountID: account.ID,
			Name:          "TV",
			Amount:        120000,
			Date:          time.Now(),
			Type:          models.TransactionTypeExpense,
			Installments:  12,
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svcs.transactions.DeleteTransaction(user.ID, tx.ID))

		var count int64
		db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 0 {
			t.Errorf("whole group should be deleted, %d rows remain", count)
		}
	})

	t.Run("other_user_cannot_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svcs := newTestServices(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestBankAccount(t, db, user.ID)
		tx := testutil.CreateTestTransaction(t, db, user.ID, account.ID, models.TransactionTypeExpense, 100)

		err := svcs.transactions.DeleteTransaction(other.ID, tx.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

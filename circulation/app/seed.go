package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/repository"
)

// seed gives the memory store one borrower and a small shelf so the API
// is usable without a database.
func seed(repo *repository.Memory, log *zap.Logger) *repository.Memory {
	repo.AddBorrower(model.Borrower{Username: "guest"})

	now := time.Now()
	for i, item := range []model.Item{
		{Barcode: "LIB-0001", ISBN: "9780451524935", Title: "1984", Author: "George Orwell", Year: 1949, TotalCopies: 2, AvailableCopies: 2},
		{Barcode: "LIB-0002", ISBN: "9780451526342", Title: "Animal Farm", Author: "George Orwell", Year: 1945, TotalCopies: 1, AvailableCopies: 1},
		{Barcode: "LIB-0003", ISBN: "9780060850524", Title: "Brave New World", Author: "Aldous Huxley", Year: 1932, TotalCopies: 1, AvailableCopies: 1},
		{Barcode: "LIB-0004", ISBN: "9780441172719", Title: "Dune", Author: "Frank Herbert", Year: 1965, TotalCopies: 3, AvailableCopies: 3},
	} {
		created := now.Add(time.Duration(i) * time.Minute)
		item.CreatedAt = &created
		if _, err := repo.AddItem(item); err != nil {
			log.Error("seed item", zap.String("barcode", item.Barcode), zap.Error(err))
		}
	}
	return repo
}

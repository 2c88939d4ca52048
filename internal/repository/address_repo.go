package repository

import (
	"context"
	"errors"

	"ZeeCrownAPI/internal/model"

	"github.com/jackc/pgx/v5"
)

var ErrAddressNotFound = errors.New("address not found")

type AddressRepository struct {
	DB DB
}

func NewAddressRepository(db DB) *AddressRepository {
	return &AddressRepository{DB: db}
}

// GetByID returns the address only when it belongs to the given user.
func (r *AddressRepository) GetByID(ctx context.Context, userID, addressID int64) (*model.Address, error) {
	query := `
		SELECT addressid, userid, houseno, street, landmark, city, state, postalcode, country, mobilenumber
		FROM addresses
		WHERE addressid=$1 AND userid=$2
	`
	var a model.Address
	err := r.DB.QueryRow(ctx, query, addressID, userID).Scan(
		&a.AddressID, &a.UserID, &a.HouseNo, &a.Street, &a.Landmark,
		&a.City, &a.State, &a.PostalCode, &a.Country, &a.MobileNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts an address and returns its id.
func (r *AddressRepository) Create(ctx context.Context, a *model.Address) (int64, error) {
	query := `
		INSERT INTO addresses (userid, houseno, street, landmark, city, state, postalcode, country, mobilenumber)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING addressid
	`
	var id int64
	err := r.DB.QueryRow(ctx, query,
		a.UserID, a.HouseNo, a.Street, a.Landmark, a.City, a.State, a.PostalCode, a.Country, a.MobileNumber,
	).Scan(&id)
	return id, err
}

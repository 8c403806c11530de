package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/botaniclock/server/database"
	"github.com/botaniclock/server/models"
	"github.com/botaniclock/server/pkg"
)

// sqlitePlantRepo, PlantRepository interface'inin SQLite implementasyonu.
type sqlitePlantRepo struct {
	db database.TxQuerier
}

func NewSQLitePlantRepo(db database.TxQuerier) PlantRepository {
	return &sqlitePlantRepo{db: db}
}

func (r *sqlitePlantRepo) Create(ctx context.Context, plant *models.Plant) error {
	query := `
		INSERT INTO plants (account_id, plant_name, last_watered, watering_interval, registration_id, image_key)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		plant.AccountID,
		plant.PlantName,
		dateToNullString(plant.LastWatered),
		plant.WateringInterval,
		plant.RegistrationID,
		plant.ImageKey,
	).Scan(&plant.ID)

	if err != nil {
		if isUniqueViolation(err) {
			// registration_id çakışması — 20 karakterlik rastgele token için
			// pratikte imkansız ama constraint yine de korur
			return fmt.Errorf("%w: registration id collision", pkg.ErrInternal)
		}
		return fmt.Errorf("failed to create plant: %w", err)
	}

	return nil
}

// plantColumns, tüm SELECT'lerde kullanılan ortak kolon listesi.
// accounts JOIN'i OwnerEmail içindir.
const plantColumns = `
	p.id, p.account_id, p.plant_name, p.last_watered, p.watering_interval,
	p.registration_id, p.image_key, a.email`

func (r *sqlitePlantRepo) GetByID(ctx context.Context, id int64) (*models.Plant, error) {
	query := `
		SELECT ` + plantColumns + `
		FROM plants p
		JOIN accounts a ON a.id = p.account_id
		WHERE p.id = ?`

	plant, err := scanPlant(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrInvalidPlant
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plant by id: %w", err)
	}

	return plant, nil
}

func (r *sqlitePlantRepo) GetByRegistrationID(ctx context.Context, registrationID string) (*models.Plant, error) {
	query := `
		SELECT ` + plantColumns + `
		FROM plants p
		JOIN accounts a ON a.id = p.account_id
		WHERE p.registration_id = ?`

	plant, err := scanPlant(r.db.QueryRowContext(ctx, query, registrationID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrInvalidPlant
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plant by registration id: %w", err)
	}

	return plant, nil
}

func (r *sqlitePlantRepo) ListByAccount(ctx context.Context, accountID int64) ([]models.Plant, error) {
	query := `
		SELECT ` + plantColumns + `
		FROM plants p
		JOIN accounts a ON a.id = p.account_id
		WHERE p.account_id = ?
		ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	defer rows.Close()

	return collectPlants(rows)
}

func (r *sqlitePlantRepo) ListAll(ctx context.Context) ([]models.Plant, error) {
	query := `
		SELECT ` + plantColumns + `
		FROM plants p
		JOIN accounts a ON a.id = p.account_id
		ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all plants: %w", err)
	}
	defer rows.Close()

	return collectPlants(rows)
}

func (r *sqlitePlantRepo) Update(ctx context.Context, plant *models.Plant) error {
	query := `
		UPDATE plants
		SET plant_name = ?, last_watered = ?, watering_interval = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		plant.PlantName,
		dateToNullString(plant.LastWatered),
		plant.WateringInterval,
		plant.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update plant: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check plant update: %w", err)
	}
	if rows == 0 {
		return pkg.ErrInvalidPlant
	}

	return nil
}

func (r *sqlitePlantRepo) UpdateImageKey(ctx context.Context, id int64, imageKey *string) error {
	query := `UPDATE plants SET image_key = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, imageKey, id)
	if err != nil {
		return fmt.Errorf("failed to update plant image key: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check image key update: %w", err)
	}
	if rows == 0 {
		return pkg.ErrInvalidPlant
	}

	return nil
}

func (r *sqlitePlantRepo) UpdateLastWatered(ctx context.Context, id int64, lastWatered models.Date) error {
	query := `UPDATE plants SET last_watered = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, lastWatered.String(), id)
	if err != nil {
		return fmt.Errorf("failed to update last watered: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check last watered update: %w", err)
	}
	if rows == 0 {
		return pkg.ErrInvalidPlant
	}

	return nil
}

func (r *sqlitePlantRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM plants WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete plant: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check plant delete: %w", err)
	}
	if rows == 0 {
		return pkg.ErrInvalidPlant
	}

	return nil
}

// scanner, hem *sql.Row hem *sql.Rows'un paylaştığı Scan imzası.
type scanner interface {
	Scan(dest ...any) error
}

// scanPlant, tek bir plant satırını model'e aktarır.
// last_watered TEXT NULL'dır — sql.NullString üzerinden *models.Date'e çevrilir.
func scanPlant(row scanner) (*models.Plant, error) {
	plant := &models.Plant{}
	var lastWatered sql.NullString

	err := row.Scan(
		&plant.ID, &plant.AccountID, &plant.PlantName, &lastWatered,
		&plant.WateringInterval, &plant.RegistrationID, &plant.ImageKey,
		&plant.OwnerEmail,
	)
	if err != nil {
		return nil, err
	}

	if lastWatered.Valid {
		d, err := models.ParseDate(lastWatered.String)
		if err != nil {
			return nil, fmt.Errorf("invalid last_watered value %q: %w", lastWatered.String, err)
		}
		plant.LastWatered = &d
	}

	return plant, nil
}

func collectPlants(rows *sql.Rows) ([]models.Plant, error) {
	plants := []models.Plant{}
	for rows.Next() {
		plant, err := scanPlant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plant: %w", err)
		}
		plants = append(plants, *plant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plants: %w", err)
	}

	return plants, nil
}

func dateToNullString(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// Package postgres implements the row store over a direct database
// connection, the maintenance path for operators who hold the backend DSN.
package postgres

import (
	"context"
	"errors"

	"plantsel/internal/models"
	"plantsel/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) CreateTicket(ctx context.Context, input store.CreateTicketInput) (models.Ticket, error) {
	ticket := models.Ticket{
		ID:        uuid.NewString(),
		Code:      input.Code,
		OwnerName: input.OwnerName,
		IsAdmin:   input.IsAdmin,
		CreatedAt: input.CreatedAt,
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO tickets (id, ticket_code, user_name, is_admin, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, COALESCE($5::timestamptz, now()))
		RETURNING created_at
	`, ticket.ID, ticket.Code, ticket.OwnerName, ticket.IsAdmin, nullableTime(input)).Scan(&ticket.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Ticket{}, store.ErrCodeTaken
		}
		return models.Ticket{}, err
	}
	return ticket, nil
}

func (s *Store) GetTicketByCode(ctx context.Context, code string) (models.Ticket, error) {
	return s.scanTicket(s.pool.QueryRow(ctx, `
		SELECT id, ticket_code, COALESCE(user_name, ''), is_admin, created_at
		FROM tickets
		WHERE ticket_code = $1
	`, code))
}

func (s *Store) GetTicketByID(ctx context.Context, id string) (models.Ticket, error) {
	return s.scanTicket(s.pool.QueryRow(ctx, `
		SELECT id, ticket_code, COALESCE(user_name, ''), is_admin, created_at
		FROM tickets
		WHERE id = $1
	`, id))
}

func (s *Store) scanTicket(row pgx.Row) (models.Ticket, error) {
	var ticket models.Ticket
	err := row.Scan(&ticket.ID, &ticket.Code, &ticket.OwnerName, &ticket.IsAdmin, &ticket.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Ticket{}, store.ErrTicketNotFound
	}
	if err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

func (s *Store) UpdateOwnerName(ctx context.Context, id, name string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE tickets
		SET user_name = NULLIF($1, '')
		WHERE id = $2
	`, name, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrTicketNotFound
	}
	return nil
}

func (s *Store) ListNonAdminTickets(ctx context.Context) ([]models.Ticket, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, ticket_code, COALESCE(user_name, ''), is_admin, created_at
		FROM tickets
		WHERE is_admin = FALSE
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var ticket models.Ticket
		if err := rows.Scan(&ticket.ID, &ticket.Code, &ticket.OwnerName, &ticket.IsAdmin, &ticket.CreatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *Store) DeleteTicket(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM tickets
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrTicketNotFound
	}
	return nil
}

func (s *Store) CreatePlant(ctx context.Context, input store.PlantInput) (models.Plant, error) {
	plant := models.Plant{
		ID:            uuid.NewString(),
		CommonName:    input.CommonName,
		BotanicalName: input.BotanicalName,
		Category:      input.Category,
		SubCategory:   input.SubCategory,
		Height:        input.Height,
		Width:         input.Width,
		ImageURL:      input.ImageURL,
		Notes:         input.Notes,
		ColourTags:    append([]string(nil), input.ColourTags...),
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO plants (id, common_name, botanical_name, category, sub_category, height, width, image_url, description, colour_tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		RETURNING created_at
	`, plant.ID, plant.CommonName, plant.BotanicalName, plant.Category, plant.SubCategory,
		plant.Height, plant.Width, plant.ImageURL, plant.Notes, plant.ColourTags).Scan(&plant.CreatedAt)
	if err != nil {
		return models.Plant{}, err
	}
	return plant, nil
}

func (s *Store) ListPlants(ctx context.Context) ([]models.Plant, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, common_name, botanical_name, category, sub_category, height, width, image_url, description, colour_tags, created_at
		FROM plants
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plants []models.Plant
	for rows.Next() {
		var plant models.Plant
		if err := rows.Scan(&plant.ID, &plant.CommonName, &plant.BotanicalName, &plant.Category,
			&plant.SubCategory, &plant.Height, &plant.Width, &plant.ImageURL, &plant.Notes,
			&plant.ColourTags, &plant.CreatedAt); err != nil {
			return nil, err
		}
		plants = append(plants, plant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plants, nil
}

func (s *Store) UpdatePlant(ctx context.Context, id string, input store.PlantInput) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE plants
		SET common_name = $1, botanical_name = $2, category = $3, sub_category = $4,
		    height = $5, width = $6, image_url = $7, description = $8, colour_tags = $9
		WHERE id = $10
	`, input.CommonName, input.BotanicalName, input.Category, input.SubCategory,
		input.Height, input.Width, input.ImageURL, input.Notes, input.ColourTags, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrPlantNotFound
	}
	return nil
}

func (s *Store) DeletePlant(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM plants
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrPlantNotFound
	}
	return nil
}

func (s *Store) AddFavourite(ctx context.Context, ticketID, plantID string) error {
	// Re-adding an existing pair is a no-op, matching the toggle contract.
	_, err := s.pool.Exec(ctx, `
		INSERT INTO favourites (ticket_id, plant_id)
		VALUES ($1, $2)
		ON CONFLICT (ticket_id, plant_id) DO NOTHING
	`, ticketID, plantID)
	return err
}

func (s *Store) RemoveFavourite(ctx context.Context, ticketID, plantID string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM favourites
		WHERE ticket_id = $1 AND plant_id = $2
	`, ticketID, plantID)
	return err
}

func (s *Store) RemoveFavouritesByTicket(ctx context.Context, ticketID string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM favourites
		WHERE ticket_id = $1
	`, ticketID)
	return err
}

func (s *Store) RemoveFavouritesByPlant(ctx context.Context, plantID string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM favourites
		WHERE plant_id = $1
	`, plantID)
	return err
}

func (s *Store) ListFavourites(ctx context.Context, ticketID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT plant_id
		FROM favourites
		WHERE ticket_id = $1
	`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plantIDs []string
	for rows.Next() {
		var plantID string
		if err := rows.Scan(&plantID); err != nil {
			return nil, err
		}
		plantIDs = append(plantIDs, plantID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plantIDs, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nullableTime(input store.CreateTicketInput) any {
	if input.CreatedAt.IsZero() {
		return nil
	}
	return input.CreatedAt
}

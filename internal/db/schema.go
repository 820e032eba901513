package db

import (
	"database/sql"
	"fmt"
)

// Table DDL for the single-route reservation schema. seat_holds rows are
// exclusive claims on (seat, date, [from_seq, to_seq)); the composite key
// keeps per-date lookups cheap.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS stations (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	arrival_time VARCHAR(10) NULL,
	departure_time VARCHAR(10) NULL,
	distance_km INT NOT NULL DEFAULT 0,
	sequence INT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_station_name (name),
	UNIQUE KEY uniq_station_sequence (sequence)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS seats (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	seat_number VARCHAR(10) NOT NULL,
	seat_type VARCHAR(10) NOT NULL,
	base_price BIGINT NOT NULL DEFAULT 0,
	is_operational TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_seat_number (seat_number)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS seat_holds (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	seat_id BIGINT NOT NULL,
	from_seq INT NOT NULL,
	to_seq INT NOT NULL,
	travel_date DATE NOT NULL,
	booking_id BIGINT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_seat_date (seat_id, travel_date),
	KEY idx_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_reference VARCHAR(40) NOT NULL,
	pnr VARCHAR(9) NOT NULL,
	passenger_name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(20) NOT NULL,
	from_station_id BIGINT NOT NULL,
	to_station_id BIGINT NOT NULL,
	travel_date DATE NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'CONFIRMED',
	total_amount BIGINT NOT NULL DEFAULT 0,
	refund_amount BIGINT NOT NULL DEFAULT 0,
	confirmation_probability DOUBLE NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	cancelled_at TIMESTAMP NULL DEFAULT NULL,
	UNIQUE KEY uniq_booking_reference (booking_reference),
	UNIQUE KEY uniq_pnr (pnr),
	KEY idx_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS meals (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	description VARCHAR(255) NOT NULL DEFAULT '',
	price BIGINT NOT NULL DEFAULT 0,
	category VARCHAR(20) NOT NULL DEFAULT 'VEG',
	is_available TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS booking_meals (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	meal_id BIGINT NOT NULL,
	quantity INT NOT NULL DEFAULT 1,
	KEY idx_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// EnsureSchema creates missing tables and seeds the fixed route, seat
// map, and meal catalog on first run.
func EnsureSchema(database *sql.DB) error {
	if database == nil {
		return fmt.Errorf("db is not available")
	}
	for _, ddl := range schemaDDL {
		if _, err := database.Exec(ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	if err := seedStations(database); err != nil {
		return err
	}
	if err := seedSeats(database); err != nil {
		return err
	}
	return seedMeals(database)
}

type stationSeed struct {
	name          string
	sequence      int
	arrivalTime   string
	departureTime string
	distanceKm    int
}

// The fixed Ahmedabad -> Mumbai overnight route.
var routeSeed = []stationSeed{
	{"Ahmedabad", 1, "20:00", "20:15", 0},
	{"Vadodara", 2, "22:00", "22:15", 100},
	{"Surat", 3, "00:30", "00:45", 250},
	{"Vapi", 4, "02:00", "02:15", 350},
	{"Mumbai", 5, "05:00", "05:00", 500},
}

func seedStations(database *sql.DB) error {
	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM stations`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, s := range routeSeed {
		_, err := database.Exec(
			`INSERT INTO stations (name, sequence, arrival_time, departure_time, distance_km) VALUES (?,?,?,?,?)`,
			s.name, s.sequence, s.arrivalTime, s.departureTime, s.distanceKm,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedSeats(database *sql.DB) error {
	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM seats`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	// One bus, 40 sleeper berths: S01-S20 lower, S21-S40 upper.
	for i := 1; i <= 40; i++ {
		seatType := "lower"
		basePrice := int64(800)
		if i > 20 {
			seatType = "upper"
			basePrice = 700
		}
		_, err := database.Exec(
			`INSERT INTO seats (seat_number, seat_type, base_price, is_operational) VALUES (?,?,?,1)`,
			fmt.Sprintf("S%02d", i), seatType, basePrice,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedMeals(database *sql.DB) error {
	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM meals`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	meals := []struct {
		name, description, category string
		price                       int64
	}{
		{"Veg Thali", "Complete meal with Roti, Paneer, Dal, Rice, Salad", "VEG", 150},
		{"Chicken Biryani", "Authentic Hyderabadi Chicken Biryani with Raita", "NON_VEG", 250},
		{"Sandwich Combo", "Grilled sandwich with chips and juice", "VEG", 100},
		{"Water Bottle", "1 Litre Mineral Water", "BEVERAGE", 20},
		{"Masala Chai", "Hot Spiced Tea", "BEVERAGE", 30},
	}
	for _, m := range meals {
		_, err := database.Exec(
			`INSERT INTO meals (name, description, price, category, is_available) VALUES (?,?,?,?,1)`,
			m.name, m.description, m.price, m.category,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample partners and fee policies for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"payments", "fee_policies", "partners"} {
				if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		partners := []struct {
			ID   int64
			Code string
			Name string
		}{
			{1, "ALPHA", "Alpha Commerce"},
			{2, "BRAVO", "Bravo Retail"},
			{3, "CHARLIE", "Charlie Markets"},
			{4, "DELTA", "Delta Shopping"},
		}

		for _, p := range partners {
			var exists int
			row := db.QueryRow("SELECT 1 FROM partners WHERE id = $1", p.ID)
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("partner %s already exists; skipping\n", p.Code)
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO partners (id, code, name, active, created_at, updated_at) VALUES ($1, $2, $3, true, now(), now())",
				p.ID, p.Code, p.Name); err != nil {
				log.Fatalf("failed to insert partner %s: %v", p.Code, err)
			}
			fmt.Println("Seeded partner:", p.Code)
		}

		policies := []struct {
			PartnerID     int64
			EffectiveFrom string
			Percentage    string
			FixedFee      string
		}{
			{1, "2020-01-01T00:00:00Z", "0.010000", "0"},
			{1, "2023-01-01T00:00:00Z", "0.020000", "50"},
			{1, "2024-01-01T00:00:00Z", "0.030000", "100"},
			{2, "2020-01-01T00:00:00Z", "0.023000", "0"},
			{2, "2024-01-01T00:00:00Z", "0.025000", "100"},
			{4, "2024-01-01T00:00:00Z", "0.030000", "0"},
		}

		for _, fp := range policies {
			var exists int
			row := db.QueryRow(
				"SELECT 1 FROM fee_policies WHERE partner_id = $1 AND effective_from = $2",
				fp.PartnerID, fp.EffectiveFrom)
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO fee_policies (partner_id, effective_from, percentage, fixed_fee, created_at) VALUES ($1, $2, $3, $4, now())",
				fp.PartnerID, fp.EffectiveFrom, fp.Percentage, fp.FixedFee); err != nil {
				log.Fatalf("failed to insert fee policy for partner %d: %v", fp.PartnerID, err)
			}
			fmt.Printf("Seeded fee policy: partner %d from %s\n", fp.PartnerID, fp.EffectiveFrom)
		}

		fmt.Println("Seeding complete")
	},
}

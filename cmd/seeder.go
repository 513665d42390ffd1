package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedClear bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with bootstrap data",
	Long:  `Seed the database with the bootstrap admin user, default sectors and the standard daily and weekly checklist templates.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if seedClear {
			clearChecklistData(db)
		}

		password := cfg.Bootstrap.AdminPassword
		if password == "" {
			password = "password"
		}
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", cfg.Bootstrap.AdminEmail).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("admin user already exists:", cfg.Bootstrap.AdminEmail)
		} else {
			if err := db.Exec(
				"INSERT INTO users (email, name, password_hash, role, is_active, created_at, updated_at) VALUES (?, ?, ?, 'admin', true, now(), now())",
				cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminName, string(hash),
			).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", cfg.Bootstrap.AdminEmail)
		}

		sectors := []struct {
			Name string
			Desc string
		}{
			{"producao", "production floor"},
			{"manutencao", "maintenance"},
			{"qualidade", "quality assurance"},
			{"logistica", "warehouse and logistics"},
		}

		for _, s := range sectors {
			var exists int
			row := db.Raw("SELECT 1 FROM sectors WHERE name = ?", s.Name).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec(
					"INSERT INTO sectors (name, description, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())",
					s.Name, s.Desc,
				).Error; err != nil {
					log.Fatalf("failed to insert sector %s: %v", s.Name, err)
				}
				fmt.Printf("Seeded sector: %s\n", s.Name)
			}
		}

		seedTemplate(db, "Checklist Diario de Treinamento", "daily", []seedItem{
			{"Segue os procedimentos de seguranca da area", false, true},
			{"Utiliza os EPIs obrigatorios corretamente", false, true},
			{"Executa a operacao conforme o padrao", false, true},
			{"Mantem o posto de trabalho organizado", false, false},
			{"Comunica anomalias ao lider", false, false},
		})

		seedTemplate(db, "Avaliacao Semanal de Treinamento", "weekly", []seedItem{
			{"Conhecimento do processo", true, false},
			{"Qualidade do trabalho executado", true, false},
			{"Autonomia na operacao", true, false},
			{"Postura de seguranca", true, false},
		})

		fmt.Println("Seed completed")
	},
}

type seedItem struct {
	Question           string
	Scored             bool
	CommentIfNotOK     bool
}

func seedTemplate(db *gorm.DB, name, kind string, items []seedItem) {
	var templateID int64
	row := db.Raw("SELECT id FROM checklist_templates WHERE name = ?", name).Row()
	if err := row.Scan(&templateID); err == nil {
		fmt.Println("template already exists:", name)
		return
	}

	if err := db.Exec(
		"INSERT INTO checklist_templates (name, kind, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())",
		name, kind,
	).Error; err != nil {
		log.Fatalf("failed to insert template %s: %v", name, err)
	}

	if err := db.Raw("SELECT id FROM checklist_templates WHERE name = ?", name).Row().Scan(&templateID); err != nil {
		log.Fatalf("template not found after insert %s: %v", name, err)
	}

	for i, item := range items {
		if err := db.Exec(
			"INSERT INTO checklist_items (template_id, position, question, scored, requires_comment_if_not_ok, created_at) VALUES (?, ?, ?, ?, ?, now())",
			templateID, i+1, item.Question, item.Scored, item.CommentIfNotOK,
		).Error; err != nil {
			log.Fatalf("failed to insert item for template %s: %v", name, err)
		}
	}

	fmt.Printf("Seeded template: %s (%d items)\n", name, len(items))
}

func clearChecklistData(db *gorm.DB) {
	// order matters because of foreign keys
	tables := []string{"alerts", "validation_logs", "checklist_answers", "checklist_instances"}
	for _, t := range tables {
		if err := db.Exec("DELETE FROM " + t).Error; err != nil {
			log.Fatalf("failed to clear table %s: %v", t, err)
		}
	}
	fmt.Println("Cleared checklist data")
}

func init() {
	seedCmd.Flags().BoolVar(&seedClear, "clear", false, "delete filled checklists, answers, validations and alerts before seeding")
}

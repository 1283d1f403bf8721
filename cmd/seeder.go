package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/danindra/workforce-scheduling/internal/rbac"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo data",
	Long:  `Seed the database with a demo company, the three system roles and demo accounts.`,
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
			clearSeedData(db)
		}

		companyID := seedCompany(db)
		permissionIDs := seedPermissions(db)

		adminPerms := []rbac.Permission{
			rbac.PermApproveRequests,
			rbac.PermAssignShifts,
			rbac.PermViewAnalytics,
			rbac.PermManageRoles,
			rbac.PermManageDepartments,
			rbac.PermCreateAccounts,
			rbac.PermDeleteAccounts,
			rbac.PermViewCompanyAnalytics,
			rbac.PermEditSchedules,
			rbac.PermViewAllEmployees,
			rbac.PermManageUnavailability,
		}
		managerPerms := []rbac.Permission{
			rbac.PermApproveRequests,
			rbac.PermAssignShifts,
			rbac.PermEditSchedules,
			rbac.PermViewAnalytics,
			rbac.PermViewAllEmployees,
			rbac.PermManageUnavailability,
		}
		employeePerms := []rbac.Permission{
			rbac.PermRequestTimeOff,
			rbac.PermSwapShifts,
			rbac.PermManageUnavailability,
		}

		adminRoleID := seedRole(db, companyID, "administrator", "Administrator", rbac.RoleClassAdmin, true, false, adminPerms, permissionIDs)
		managerRoleID := seedRole(db, companyID, "shift_manager", "Shift Manager", rbac.RoleClassManager, false, false, managerPerms, permissionIDs)
		employeeRoleID := seedRole(db, companyID, "team_member", "Team Member", rbac.RoleClassEmployee, false, true, employeePerms, permissionIDs)

		adminID := seedUser(db, companyID, adminRoleID, "admin@demo.workforce.dev", "Dana Admin", "Operations Lead")
		managerID := seedUser(db, companyID, managerRoleID, "manager@demo.workforce.dev", "Morgan Manager", "Floor Manager")
		employeeID := seedUser(db, companyID, employeeRoleID, "employee@demo.workforce.dev", "Emery Employee", "Associate")

		db.MustExec(`UPDATE companies SET admin_user_id = $1 WHERE id = $2 AND admin_user_id IS NULL`, adminID, companyID)
		db.MustExec(`UPDATE users SET manager_id = $1 WHERE id = $2 AND manager_id IS NULL`, managerID, employeeID)

		seedShifts(db, companyID, managerID, employeeID)

		fmt.Println("Seed complete.")
	},
}

func clearSeedData(db *sqlx.DB) {
	tables := []string{
		"sessions", "shift_swap_requests", "time_off_requests", "shifts",
		"role_permissions", "users", "roles", "permissions", "departments", "companies",
	}
	for _, t := range tables {
		db.MustExec("DELETE FROM " + t)
	}
	fmt.Println("Cleared existing data.")
}

func seedCompany(db *sqlx.DB) int64 {
	var id int64
	err := db.Get(&id, `SELECT id FROM companies WHERE name = $1`, "Demo Workforce Co")
	if err == nil {
		return id
	}

	err = db.QueryRow(`
		INSERT INTO companies (name, subscription_plan, time_zone, work_week_start,
			default_shift_hours, allow_shift_swapping, require_manager_approval, created_at, updated_at)
		VALUES ($1, 'free', 'UTC', 1, 8, TRUE, TRUE, now(), now())
		RETURNING id`, "Demo Workforce Co").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed company: %v", err)
	}
	fmt.Println("Seeded company: Demo Workforce Co")
	return id
}

func seedPermissions(db *sqlx.DB) map[rbac.Permission]int64 {
	ids := make(map[rbac.Permission]int64, len(rbac.AllPermissions()))
	for _, p := range rbac.AllPermissions() {
		var id int64
		err := db.Get(&id, `SELECT id FROM permissions WHERE name = $1`, p.String())
		if err != nil {
			err = db.QueryRow(`
				INSERT INTO permissions (name, description, created_at)
				VALUES ($1, $2, now()) RETURNING id`, p.String(), p.Describe()).Scan(&id)
			if err != nil {
				log.Fatalf("failed to seed permission %s: %v", p, err)
			}
		}
		ids[p] = id
	}
	return ids
}

func seedRole(db *sqlx.DB, companyID int64, name, displayName string, class rbac.RoleClass, system, isDefault bool, perms []rbac.Permission, permissionIDs map[rbac.Permission]int64) int64 {
	var id int64
	err := db.Get(&id, `SELECT id FROM roles WHERE company_id = $1 AND name = $2`, companyID, name)
	if err != nil {
		err = db.QueryRow(`
			INSERT INTO roles (name, display_name, class, is_default, is_system_defined, company_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now()) RETURNING id`,
			name, displayName, class.String(), isDefault, system, companyID).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed role %s: %v", name, err)
		}
		fmt.Printf("Seeded role: %s (%d permissions)\n", displayName, len(perms))
	}

	for _, p := range perms {
		var exists int
		err := db.Get(&exists, `SELECT 1 FROM role_permissions WHERE role_id = $1 AND permission_id = $2`, id, permissionIDs[p])
		if err == nil {
			continue
		}
		db.MustExec(`INSERT INTO role_permissions (role_id, permission_id, created_at) VALUES ($1, $2, now())`,
			id, permissionIDs[p])
	}
	return id
}

func seedUser(db *sqlx.DB, companyID, roleID int64, email, name, jobTitle string) int64 {
	var id int64
	err := db.Get(&id, `SELECT id FROM users WHERE email = $1`, email)
	if err == nil {
		return id
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	err = db.QueryRow(`
		INSERT INTO users (email, name, password_hash, role_id, company_id, job_title, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, now(), now()) RETURNING id`,
		email, name, string(hash), roleID, companyID, jobTitle).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
	return id
}

func seedShifts(db *sqlx.DB, companyID, managerID, employeeID int64) {
	var count int64
	if err := db.Get(&count, `SELECT COUNT(*) FROM shifts WHERE company_id = $1`, companyID); err == nil && count > 0 {
		return
	}

	start := time.Now().Truncate(24 * time.Hour).Add(9 * time.Hour)
	for day := 0; day < 5; day++ {
		s := start.AddDate(0, 0, day)
		db.MustExec(`
			INSERT INTO shifts (user_id, manager_id, company_id, title, start_time, end_time, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, 'active', now(), now())`,
			employeeID, managerID, companyID, "Morning shift", s, s.Add(8*time.Hour))
	}
	fmt.Println("Seeded sample shifts.")
}

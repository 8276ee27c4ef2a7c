package main

import (
	"log"
	"os"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// multiStatementDSN rewrites dsn so the driver accepts the multi-statement
// schema script below, regardless of how DB_DSN was written.
func multiStatementDSN(dsn string) (string, error) {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.MultiStatements = true
	return cfg.FormatDSN(), nil
}

func main() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	dsn, err := multiStatementDSN(dsn)
	if err != nil {
		log.Fatalf("Invalid DB_DSN: %v", err)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS courses (
	  course_id BIGINT NOT NULL AUTO_INCREMENT,
	  course_name VARCHAR(255) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (course_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS students (
	  id BIGINT NOT NULL AUTO_INCREMENT,
	  first_name VARCHAR(100) NOT NULL,
	  middle_name VARCHAR(100) NOT NULL DEFAULT '',
	  last_name VARCHAR(100) NOT NULL,
	  name_extension VARCHAR(20) NOT NULL DEFAULT '',
	  birthday DATE NULL,
	  age INT NOT NULL DEFAULT 0,
	  sex VARCHAR(10) NOT NULL DEFAULT '',
	  civil_status VARCHAR(20) NOT NULL DEFAULT '',
	  contact_number VARCHAR(20) NOT NULL DEFAULT '',
	  province VARCHAR(100) NOT NULL DEFAULT '',
	  city VARCHAR(100) NOT NULL DEFAULT '',
	  barangay VARCHAR(100) NOT NULL DEFAULT '',
	  street VARCHAR(255) NOT NULL DEFAULT '',
	  birth_province VARCHAR(100) NOT NULL DEFAULT '',
	  birth_city VARCHAR(100) NOT NULL DEFAULT '',
	  guardian_name VARCHAR(255) NOT NULL DEFAULT '',
	  guardian_phone VARCHAR(20) NOT NULL DEFAULT '',
	  email VARCHAR(255) NOT NULL,
	  uli VARCHAR(32) NOT NULL,
	  last_school VARCHAR(255) NOT NULL DEFAULT '',
	  last_school_loc VARCHAR(255) NOT NULL DEFAULT '',
	  picture_path VARCHAR(255) NOT NULL DEFAULT '',
	  course VARCHAR(255) NOT NULL DEFAULT '',
	  nc_level VARCHAR(20) NOT NULL DEFAULT '',
	  adviser VARCHAR(255) NOT NULL DEFAULT '',
	  training_start DATE NULL,
	  training_end DATE NULL,
	  status VARCHAR(16) NOT NULL DEFAULT 'pending',
	  approved_by BIGINT NULL,
	  approved_at DATETIME(3) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_students_email (email),
	  UNIQUE KEY ux_students_uli (uli),
	  KEY ix_students_status (status),
	  KEY ix_students_province (province)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS course_applications (
	  id BIGINT NOT NULL AUTO_INCREMENT,
	  student_id BIGINT NOT NULL,
	  course_id BIGINT NOT NULL,
	  nc_level VARCHAR(20) NOT NULL DEFAULT '',
	  status VARCHAR(16) NOT NULL DEFAULT 'pending',
	  reviewed_by BIGINT NULL,
	  reviewed_at DATETIME(3) NULL,
	  notes VARCHAR(512) NOT NULL DEFAULT '',
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_course_applications_student (student_id),
	  KEY ix_course_applications_status (status),
	  CONSTRAINT fk_course_applications_student FOREIGN KEY (student_id) REFERENCES students(id) ON DELETE CASCADE,
	  CONSTRAINT fk_course_applications_course FOREIGN KEY (course_id) REFERENCES courses(course_id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS admin_users (
	  id BIGINT NOT NULL AUTO_INCREMENT,
	  username VARCHAR(64) NOT NULL,
	  email VARCHAR(255) NOT NULL,
	  password_hash VARCHAR(255) NOT NULL,
	  role VARCHAR(32) NOT NULL DEFAULT 'admin',
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_admin_users_username (username),
	  UNIQUE KEY ux_admin_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS sessions (
	  id CHAR(36) NOT NULL,
	  admin_id BIGINT NOT NULL,
	  theme VARCHAR(8) NOT NULL DEFAULT 'light',
	  expires_at DATETIME(3) NOT NULL,
	  created_at DATETIME(3) NOT NULL,
	  last_seen_at DATETIME(3) NOT NULL,
	  PRIMARY KEY (id),
	  KEY ix_sessions_admin_id (admin_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS activity_log (
	  id BIGINT NOT NULL AUTO_INCREMENT,
	  action VARCHAR(64) NOT NULL,
	  description VARCHAR(512) NOT NULL,
	  actor_role VARCHAR(32) NOT NULL,
	  actor_id BIGINT NOT NULL,
	  subject_type VARCHAR(32) NULL,
	  subject_id BIGINT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_activity_log_actor (actor_id),
	  KEY ix_activity_log_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("✓ schema created successfully")
}

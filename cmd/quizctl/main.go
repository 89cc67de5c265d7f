package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/olekukonko/tablewriter"
)

func init() {
	// Подхватываем .env, если он есть рядом
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
}

func main() {
	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"))

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	for {
		displayMenu()
		choice := readChoice()

		switch choice {
		case "1":
			displayOverview(db)
		case "2":
			displaySubjectAverages(db)
		case "3":
			displayPopularQuizzes(db)
		case "4":
			displayUserPerformance(db)
		case "5":
			color.Green("Bye!")
			return
		default:
			color.Red("Invalid choice. Please try again.")
		}
	}
}

func displayMenu() {
	color.Cyan("\n=== Quizmaster Admin Console ===")
	fmt.Println("1. Platform Overview")
	fmt.Println("2. Subject Averages")
	fmt.Println("3. Popular Quizzes")
	fmt.Println("4. User Performance")
	fmt.Println("5. Exit")
	fmt.Print("\nEnter your choice (1-5): ")
}

func readChoice() string {
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}

func displayOverview(db *sql.DB) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM users WHERE is_admin = FALSE),
            (SELECT COUNT(*) FROM subjects),
            (SELECT COUNT(*) FROM quizzes),
            (SELECT COUNT(*) FROM questions),
            (SELECT COUNT(*) FROM quiz_attempts WHERE completed = TRUE)
    `

	var users, subjects, quizzes, questions, attempts int
	if err := db.QueryRow(query).Scan(&users, &subjects, &quizzes, &questions, &attempts); err != nil {
		log.Printf("Error getting overview: %v", err)
		return
	}

	color.Yellow("\nPlatform Overview")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Learners", "Subjects", "Quizzes", "Questions", "Completed Attempts"})
	table.Append([]string{
		strconv.Itoa(users),
		strconv.Itoa(subjects),
		strconv.Itoa(quizzes),
		strconv.Itoa(questions),
		strconv.Itoa(attempts),
	})
	table.Render()
}

func displaySubjectAverages(db *sql.DB) {
	query := `
        SELECT s.name, COUNT(a.id), COALESCE(AVG(a.score), 0)
        FROM subjects s
        LEFT JOIN quizzes q ON q.subject_id = s.id
        LEFT JOIN quiz_attempts a ON a.quiz_id = q.id AND a.completed = TRUE AND a.score IS NOT NULL
        GROUP BY s.id, s.name
        ORDER BY s.name
    `

	rows, err := db.Query(query)
	if err != nil {
		log.Printf("Error getting subject averages: %v", err)
		return
	}
	defer rows.Close()

	color.Yellow("\nSubject Averages")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Subject", "Attempts", "Average Score"})

	for rows.Next() {
		var name string
		var attempts int
		var average float64
		if err := rows.Scan(&name, &attempts, &average); err != nil {
			log.Printf("Error scanning row: %v", err)
			continue
		}
		table.Append([]string{name, strconv.Itoa(attempts), fmt.Sprintf("%.1f", average)})
	}

	table.Render()
}

func displayPopularQuizzes(db *sql.DB) {
	query := `
        SELECT q.name, s.name, COUNT(a.id), COALESCE(AVG(a.score), 0)
        FROM quizzes q
        JOIN subjects s ON s.id = q.subject_id
        LEFT JOIN quiz_attempts a ON a.quiz_id = q.id AND a.completed = TRUE
        GROUP BY q.id, q.name, s.name
        ORDER BY COUNT(a.id) DESC
        LIMIT 10
    `

	rows, err := db.Query(query)
	if err != nil {
		log.Printf("Error getting popular quizzes: %v", err)
		return
	}
	defer rows.Close()

	color.Yellow("\nTop 10 Quizzes by Attempts")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rank", "Quiz", "Subject", "Attempts", "Average Score"})

	rank := 1
	for rows.Next() {
		var quiz, subject string
		var attempts int
		var average float64
		if err := rows.Scan(&quiz, &subject, &attempts, &average); err != nil {
			continue
		}
		table.Append([]string{
			strconv.Itoa(rank),
			quiz,
			subject,
			strconv.Itoa(attempts),
			fmt.Sprintf("%.1f", average),
		})
		rank++
	}

	table.Render()
}

func displayUserPerformance(db *sql.DB) {
	fmt.Print("Enter username to inspect: ")
	username := readChoice()
	if username == "" {
		color.Red("Username is required.")
		return
	}

	query := `
        SELECT q.name, s.name, COALESCE(a.score, 0), a.completed_at
        FROM quiz_attempts a
        JOIN quizzes q ON q.id = a.quiz_id
        JOIN subjects s ON s.id = q.subject_id
        JOIN users u ON u.id = a.user_id
        WHERE u.username = $1 AND a.completed = TRUE
        ORDER BY a.completed_at DESC
        LIMIT 20
    `

	rows, err := db.Query(query, username)
	if err != nil {
		log.Printf("Error getting user performance: %v", err)
		return
	}
	defer rows.Close()

	color.Yellow("\nRecent Attempts: %s", username)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Quiz", "Subject", "Score", "Completed At"})

	found := false
	for rows.Next() {
		var quiz, subject string
		var score float64
		var completedAt sql.NullTime
		if err := rows.Scan(&quiz, &subject, &score, &completedAt); err != nil {
			log.Printf("Error scanning row: %v", err)
			continue
		}
		completed := ""
		if completedAt.Valid {
			completed = completedAt.Time.Format("2006-01-02 15:04")
		}
		table.Append([]string{quiz, subject, fmt.Sprintf("%.1f", score), completed})
		found = true
	}

	if !found {
		color.Red("No completed attempts for %q.", username)
		return
	}
	table.Render()
}

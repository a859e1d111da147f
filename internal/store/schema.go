package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the schema and the query builders.
const (
	tableCertifications = "certifications"
	tableQuizzes        = "quizzes"
	tableQuestions      = "questions"
	tableProfiles       = "user_profiles"
	tableProgress       = "user_progress"
	tableAchievements   = "achievements"
	tableLLMEvents      = "llm_request_events"
)

var (
	// CertificationsColumns holds the columns for the "certifications" table.
	CertificationsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "code", Type: field.TypeString, Unique: true},
		{Name: "name", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
	}
	// CertificationsTable holds the schema information for the "certifications" table.
	CertificationsTable = &schema.Table{
		Name:       tableCertifications,
		Columns:    CertificationsColumns,
		PrimaryKey: []*schema.Column{CertificationsColumns[0]},
	}

	// ProfilesColumns holds the columns for the "user_profiles" table.
	ProfilesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "display_name", Type: field.TypeString, Default: ""},
		{Name: "xp", Type: field.TypeInt, Default: 0},
		{Name: "level", Type: field.TypeInt, Default: 1},
		{Name: "current_streak", Type: field.TypeInt, Default: 0},
		{Name: "best_streak", Type: field.TypeInt, Default: 0},
		{Name: "last_quiz_date", Type: field.TypeString, Nullable: true},
		{Name: "version", Type: field.TypeInt, Default: 1},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// ProfilesTable holds the schema information for the "user_profiles" table.
	ProfilesTable = &schema.Table{
		Name:       tableProfiles,
		Columns:    ProfilesColumns,
		PrimaryKey: []*schema.Column{ProfilesColumns[0]},
	}

	// QuizzesColumns holds the columns for the "quizzes" table.
	QuizzesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "certification_id", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "total_questions", Type: field.TypeInt},
		{Name: "score", Type: field.TypeInt, Nullable: true},
		{Name: "xp_earned", Type: field.TypeInt, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "completed_at", Type: field.TypeTime, Nullable: true},
	}
	// QuizzesTable holds the schema information for the "quizzes" table.
	QuizzesTable = &schema.Table{
		Name:       tableQuizzes,
		Columns:    QuizzesColumns,
		PrimaryKey: []*schema.Column{QuizzesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quizzes_user_profiles_quizzes",
				Columns:    []*schema.Column{QuizzesColumns[1]},
				RefColumns: []*schema.Column{ProfilesColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "quizzes_certifications_quizzes",
				Columns:    []*schema.Column{QuizzesColumns[2]},
				RefColumns: []*schema.Column{CertificationsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "quiz_user_id_created_at",
				Unique:  false,
				Columns: []*schema.Column{QuizzesColumns[1], QuizzesColumns[7]},
			},
		},
	}

	// QuestionsColumns holds the columns for the "questions" table.
	QuestionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "quiz_id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "question_text", Type: field.TypeString, Size: 2147483647},
		{Name: "question_type", Type: field.TypeString},
		{Name: "options", Type: field.TypeJSON},
		{Name: "correct_answer", Type: field.TypeJSON},
		{Name: "explanation", Type: field.TypeString, Size: 2147483647},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "domain", Type: field.TypeString},
		{Name: "user_answer", Type: field.TypeJSON, Nullable: true},
		{Name: "is_correct", Type: field.TypeBool, Nullable: true},
		{Name: "xp_earned", Type: field.TypeInt, Default: 0},
	}
	// QuestionsTable holds the schema information for the "questions" table.
	QuestionsTable = &schema.Table{
		Name:       tableQuestions,
		Columns:    QuestionsColumns,
		PrimaryKey: []*schema.Column{QuestionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "questions_quizzes_questions",
				Columns:    []*schema.Column{QuestionsColumns[1]},
				RefColumns: []*schema.Column{QuizzesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "question_quiz_id_position",
				Unique:  true,
				Columns: []*schema.Column{QuestionsColumns[1], QuestionsColumns[2]},
			},
		},
	}

	// ProgressColumns holds the columns for the "user_progress" table.
	ProgressColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "certification_id", Type: field.TypeString},
		{Name: "total_xp", Type: field.TypeInt, Default: 0},
		{Name: "total_quizzes", Type: field.TypeInt, Default: 0},
		{Name: "total_questions_answered", Type: field.TypeInt, Default: 0},
		{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		{Name: "accuracy", Type: field.TypeFloat64, Default: 0},
		{Name: "current_difficulty", Type: field.TypeString, Default: "easy"},
		{Name: "weak_domains", Type: field.TypeJSON},
		{Name: "version", Type: field.TypeInt, Default: 1},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// ProgressTable holds the schema information for the "user_progress" table.
	ProgressTable = &schema.Table{
		Name:       tableProgress,
		Columns:    ProgressColumns,
		PrimaryKey: []*schema.Column{ProgressColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "user_progress_user_profiles_progress",
				Columns:    []*schema.Column{ProgressColumns[1]},
				RefColumns: []*schema.Column{ProfilesColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "user_progress_certifications_progress",
				Columns:    []*schema.Column{ProgressColumns[2]},
				RefColumns: []*schema.Column{CertificationsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "userprogress_user_id_certification_id",
				Unique:  true,
				Columns: []*schema.Column{ProgressColumns[1], ProgressColumns[2]},
			},
		},
	}

	// AchievementsColumns holds the columns for the "achievements" table.
	AchievementsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "achievement_type", Type: field.TypeString},
		{Name: "achievement_name", Type: field.TypeString},
		{Name: "achievement_description", Type: field.TypeString, Default: ""},
		{Name: "quiz_id", Type: field.TypeString, Nullable: true},
		{Name: "occurrence", Type: field.TypeString, Default: ""},
		{Name: "earned_at", Type: field.TypeTime},
	}
	// AchievementsTable holds the schema information for the "achievements" table.
	AchievementsTable = &schema.Table{
		Name:       tableAchievements,
		Columns:    AchievementsColumns,
		PrimaryKey: []*schema.Column{AchievementsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "achievements_user_profiles_achievements",
				Columns:    []*schema.Column{AchievementsColumns[1]},
				RefColumns: []*schema.Column{ProfilesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "achievement_user_id_type_name_occurrence",
				Unique:  true,
				Columns: []*schema.Column{AchievementsColumns[1], AchievementsColumns[2], AchievementsColumns[3], AchievementsColumns[6]},
			},
		},
	}

	// LLMEventsColumns holds the columns for the "llm_request_events" table.
	LLMEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LLMEventsTable holds the schema information for the "llm_request_events" table.
	LLMEventsTable = &schema.Table{
		Name:       tableLLMEvents,
		Columns:    LLMEventsColumns,
		PrimaryKey: []*schema.Column{LLMEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_provider", Columns: []*schema.Column{LLMEventsColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LLMEventsColumns[4]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{LLMEventsColumns[8]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		CertificationsTable,
		ProfilesTable,
		QuizzesTable,
		QuestionsTable,
		ProgressTable,
		AchievementsTable,
		LLMEventsTable,
	}
)

func init() {
	QuizzesTable.ForeignKeys[0].RefTable = ProfilesTable
	QuizzesTable.ForeignKeys[1].RefTable = CertificationsTable
	QuestionsTable.ForeignKeys[0].RefTable = QuizzesTable
	ProgressTable.ForeignKeys[0].RefTable = ProfilesTable
	ProgressTable.ForeignKeys[1].RefTable = CertificationsTable
	AchievementsTable.ForeignKeys[0].RefTable = ProfilesTable
}

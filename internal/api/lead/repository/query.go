package leadRepository

const (
	queryCreateLead = `
		INSERT INTO quote_leads (
			id, user_id, name, age, city,
			has_dependents, dependent_details, completed_at
		) VALUES (
			:id, :user_id, :name, :age, :city,
			:has_dependents, :dependent_details, :completed_at
		)
	`

	queryGetLeadsByUserID = `
		SELECT
			id, user_id, name, age, city,
			has_dependents, dependent_details, completed_at
		FROM quote_leads
		WHERE user_id = :user_id
		ORDER BY completed_at DESC
	`
)

package models

// QueryType names a statement in the postgres data source registry.
type QueryType string

const (
	QueryTypeCompanyList            QueryType = "company_list"
	QueryTypeCompanySalaryRanges    QueryType = "company_salary_ranges"
	QueryTypeCompanyInterviewRounds QueryType = "company_interview_rounds"
)

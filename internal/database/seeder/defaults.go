package seeder

func Defaults(orgID string) []Seeder {
	return []Seeder{
		DemoJobsSeeder{OrgID: orgID},
	}
}

package entity

// JobType is a member job. Jobs double as authorization roles.
type JobType string

const (
	JobPresident       JobType = "ROLE_PRESIDENT"
	JobVicePresident   JobType = "ROLE_VICE_PRESIDENT"
	JobExternalAffairs JobType = "ROLE_EXTERNAL_AFFAIRS"
	JobAcademic        JobType = "ROLE_ACADEMIC"
	JobSystemAdmin     JobType = "ROLE_SYSTEM_ADMIN"
	JobClerk           JobType = "ROLE_CLERK"
	JobTreasurer       JobType = "ROLE_TREASURER"
	JobLibrarian       JobType = "ROLE_LIBRARIAN"
	JobMember          JobType = "ROLE_MEMBER"
	JobCtfAdmin        JobType = "ROLE_CTF_ADMIN"
)

// AllJobs lists every job in seeding order.
var AllJobs = []JobType{
	JobPresident, JobVicePresident, JobExternalAffairs, JobAcademic, JobSystemAdmin,
	JobClerk, JobTreasurer, JobLibrarian, JobMember, JobCtfAdmin,
}

// MemberJob is a row of member_job
type MemberJob struct {
	ID   int64
	Name JobType
}

// Electable reports whether candidates can run for this job in an election.
func (j JobType) Electable() bool {
	switch j {
	case JobPresident, JobVicePresident, JobClerk, JobTreasurer:
		return true
	}
	return false
}

func (j JobType) Valid() bool {
	for _, v := range AllJobs {
		if v == j {
			return true
		}
	}
	return false
}

package synthetic

// Departments are the fixed buckets a learner is assigned to until real
// org data is available.
var Departments = [4]string{"Produkcja", "Logistyka", "Utrzymanie ruchu", "Administracja"}

// MetricsProvider supplies per-learner activity metrics. Aggregators depend
// on this contract only, never on Hash directly.
type MetricsProvider interface {
	// LastActivityDays is the number of days since the learner was last seen, in [0, 30).
	LastActivityDays(email string) int
	// Department assigns the learner to one of the fixed Departments buckets.
	Department(email string) string
	// StudyMinutes is the learner's total study time in minutes.
	StudyMinutes(email string) int
	// Sessions is the learner's total session count.
	Sessions(email string) int
	// TestScore is the learner's average test score in [50, 100].
	TestScore(email string) int
}

type hashMetrics struct{}

// NewHashMetrics returns the hash-backed MetricsProvider.
func NewHashMetrics() MetricsProvider {
	return hashMetrics{}
}

func (hashMetrics) LastActivityDays(email string) int {
	return int(Hash(email+"-last") % 30)
}

func (hashMetrics) Department(email string) string {
	return Departments[Hash(email+"-dept")%4]
}

func (hashMetrics) StudyMinutes(email string) int {
	return 30 + int(Hash(email+"-minutes")%570)
}

func (hashMetrics) Sessions(email string) int {
	return 1 + int(Hash(email+"-sessions")%40)
}

func (hashMetrics) TestScore(email string) int {
	return 50 + int(Hash(email+"-score")%51)
}

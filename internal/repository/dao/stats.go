package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ComplianceRow struct {
	DelegateID   string
	Name         string
	Department   string
	Municipality string
	Assigned     int
	Reported     int
}

type CandidateVotes struct {
	CandidateID  string
	FullName     string
	Party        string
	Position     string
	BallotNumber int
	Color        string
	Votes        int
}

type PartyVotes struct {
	Position string
	Party    string
	Votes    int
}

type MunicipalityReported struct {
	Department     string
	Municipality   string
	ReportedTables int
}

type ReportTotals struct {
	Reports    int
	TotalVotes int
}

type FeedRow struct {
	ReportID     string
	DelegateID   string
	DelegateName string
	Department   string
	Municipality string
	StationCode  string
	TableNumber  int
	TotalVotes   int
	PhotoURL     *string
	ReportedAt   time.Time
}

// StatsDAO runs the read-only aggregate queries behind compliance and the
// coverage dashboard. An empty delegateID means every delegate.
type StatsDAO struct {
	db     *gorm.DB
	photos bool
}

func NewStatsDAO(db *gorm.DB, photos bool) *StatsDAO {
	return &StatsDAO{
		db:     db,
		photos: photos,
	}
}

// Compliance counts assignments and distinct reported assignments per
// delegate. Delegates without assignments are included with zeros.
func (d *StatsDAO) Compliance(ctx context.Context, delegateID string) ([]ComplianceRow, error) {
	var rows []ComplianceRow

	q := d.db.WithContext(ctx).
		Table("delegates AS d").
		Select(`d.id AS delegate_id, d.name, d.department, d.municipality,
			COUNT(DISTINCT a.id) AS assigned,
			COUNT(DISTINCT r.assignment_id) AS reported`).
		Joins("LEFT JOIN table_assignments a ON a.delegate_id = d.id").
		Joins("LEFT JOIN vote_reports r ON r.assignment_id = a.id").
		Group("d.id, d.name, d.department, d.municipality")
	if delegateID != "" {
		q = q.Where("d.id = ?", delegateID)
	}

	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// reports selects the reports of live assignments. A report whose table was
// dropped from its delegate stays stored but no longer counts.
func (d *StatsDAO) reports(ctx context.Context, delegateID string) *gorm.DB {
	q := d.db.WithContext(ctx).
		Table("vote_reports AS r").
		Joins("JOIN table_assignments a ON a.id = r.assignment_id")
	if delegateID != "" {
		q = q.Where("a.delegate_id = ?", delegateID)
	}

	return q
}

func (d *StatsDAO) Totals(ctx context.Context, delegateID string) (ReportTotals, error) {
	var totals ReportTotals

	err := d.reports(ctx, delegateID).
		Select("COUNT(*) AS reports, COALESCE(SUM(r.total_votes), 0) AS total_votes").
		Scan(&totals).Error
	if err != nil {
		return ReportTotals{}, err
	}

	return totals, nil
}

// CandidateVotes sums votes per catalog candidate. Candidates nobody voted
// for are listed with zero.
func (d *StatsDAO) CandidateVotes(ctx context.Context, delegateID string) ([]CandidateVotes, error) {
	votes := d.reports(ctx, delegateID).
		Select("vd.candidate_id, vd.votes").
		Joins("JOIN vote_details vd ON vd.report_id = r.id")

	var rows []CandidateVotes
	err := d.db.WithContext(ctx).
		Table("candidates AS c").
		Select(`c.id AS candidate_id, c.full_name, c.party, c.position, c.ballot_number, c.color,
			COALESCE(SUM(v.votes), 0) AS votes`).
		Joins("LEFT JOIN (?) v ON v.candidate_id = c.id", votes).
		Group("c.id, c.full_name, c.party, c.position, c.ballot_number, c.color").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// PartyVotes reads the stored per-party rollups.
func (d *StatsDAO) PartyVotes(ctx context.Context, delegateID string) ([]PartyVotes, error) {
	var rows []PartyVotes

	err := d.reports(ctx, delegateID).
		Select("p.position, p.party, SUM(p.votes) AS votes").
		Joins("JOIN party_vote_details p ON p.report_id = r.id").
		Group("p.position, p.party").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// DerivedPartyVotes computes per-party totals from candidate details for
// schemas without the rollup table.
func (d *StatsDAO) DerivedPartyVotes(ctx context.Context, delegateID string) ([]PartyVotes, error) {
	var rows []PartyVotes

	err := d.reports(ctx, delegateID).
		Select("c.position, c.party, SUM(vd.votes) AS votes").
		Joins("JOIN vote_details vd ON vd.report_id = r.id").
		Joins("JOIN candidates c ON c.id = vd.candidate_id").
		Group("c.position, c.party").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// ReportedByMunicipality counts distinct reported assignments per
// municipality.
func (d *StatsDAO) ReportedByMunicipality(ctx context.Context, delegateID string) ([]MunicipalityReported, error) {
	var rows []MunicipalityReported

	err := d.reports(ctx, delegateID).
		Select("r.department, r.municipality, COUNT(DISTINCT r.assignment_id) AS reported_tables").
		Group("r.department, r.municipality").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// AssignedByMunicipality counts a delegate's assignments per municipality.
func (d *StatsDAO) AssignedByMunicipality(ctx context.Context, delegateID string) ([]MunicipalityTables, error) {
	var rows []MunicipalityTables

	err := d.db.WithContext(ctx).
		Model(&TableAssignment{}).
		Select("department, municipality, COUNT(*) AS total_tables").
		Where("delegate_id = ?", delegateID).
		Group("department, municipality").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// MissingPhotos counts reports without a photo. It is always zero when the
// schema does not store photos.
func (d *StatsDAO) MissingPhotos(ctx context.Context, delegateID string) (int, error) {
	if !d.photos {
		return 0, nil
	}

	var n int64
	err := d.reports(ctx, delegateID).
		Where("(r.photo_url IS NULL OR r.photo_url = '')").
		Count(&n).Error
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

func (d *StatsDAO) Feed(ctx context.Context, delegateID string, limit int) ([]FeedRow, error) {
	cols := `r.id AS report_id, r.delegate_id, COALESCE(d.name, '') AS delegate_name, r.department, r.municipality,
		r.station_code, r.table_number, r.total_votes, r.reported_at`
	if d.photos {
		cols += ", r.photo_url"
	}

	var rows []FeedRow
	err := d.reports(ctx, delegateID).
		Select(cols).
		Joins("LEFT JOIN delegates d ON d.id = r.delegate_id").
		Order("r.reported_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

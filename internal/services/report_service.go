package services

import "veneya/internal/repos"

// ZoneReport is the earnings view for one zone: per-product rows plus the
// grand total. Total always equals the sum of the per-product sums, both
// being computed from the same join at query time.
type ZoneReport struct {
	Zone     string                      `json:"zone"`
	Products []repos.ZoneProductEarnings `json:"products"`
	Total    float64                     `json:"total"`
}

type ReportService struct {
	Reports *repos.ReportRepo
}

func NewReportService(reports *repos.ReportRepo) *ReportService {
	return &ReportService{Reports: reports}
}

func (s *ReportService) ZoneReport(ownerID int64, zone string) (*ZoneReport, error) {
	products, err := s.Reports.EarningsByZoneAndProduct(ownerID, zone)
	if err != nil {
		return nil, err
	}
	total, err := s.Reports.TotalEarnings(ownerID, zone)
	if err != nil {
		return nil, err
	}
	return &ZoneReport{Zone: zone, Products: products, Total: total}, nil
}

func (s *ReportService) SalesBreakdown(ownerID int64, zone string) ([]repos.SaleBreakdownRow, error) {
	return s.Reports.SalesBreakdown(ownerID, zone)
}

// ZoneRanking lists the owner's zones ordered by earnings, best first.
func (s *ReportService) ZoneRanking(ownerID int64) ([]repos.ZoneTotal, error) {
	return s.Reports.ZoneTotals(ownerID)
}

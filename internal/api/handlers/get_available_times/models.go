package get_available_times

import (
	"time"

	"github.com/punkajrapr/timegrid/internal/domain"
	getAvailableTimes "github.com/punkajrapr/timegrid/internal/usecase/get_available_times"
)

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	Times []string `json:"times"`
}

// ToUseCaseRequest создает запрос use case из параметров пути
func ToUseCaseRequest(businessID, serviceID int64, dateStr string) (*getAvailableTimes.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableTimes.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailableTimesResponse {
	times := make([]string, len(resp.Times))
	for i, t := range resp.Times {
		times[i] = t.String()
	}

	return &AvailableTimesResponse{Times: times}
}

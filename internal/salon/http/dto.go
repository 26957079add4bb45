package http

import "github.com/glowbook/salon-backend/internal/salon"

type UpdateInfoRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	Address          *string `json:"address"`
	Phone            *string `json:"phone"`
	WorkingHoursText *string `json:"working_hours_text"`
	PreparationText  *string `json:"preparation_text"`
	Instagram        *string `json:"instagram"`
}

type InfoResponse struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	WorkingHoursText string `json:"working_hours_text"`
	PreparationText  string `json:"preparation_text"`
	Instagram        string `json:"instagram"`
}

func NewInfoResponse(info *salon.Info) InfoResponse {
	return InfoResponse{
		Name:             info.Name,
		Description:      info.Description,
		Address:          info.Address,
		Phone:            info.Phone,
		WorkingHoursText: info.WorkingHoursText,
		PreparationText:  info.PreparationText,
		Instagram:        info.Instagram,
	}
}

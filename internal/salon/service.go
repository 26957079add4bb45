package salon

import "context"

type UpdateRequest struct {
	Name             *string
	Description      *string
	Address          *string
	Phone            *string
	WorkingHoursText *string
	PreparationText  *string
	Instagram        *string
}

type InfoService interface {
	Get(ctx context.Context) (*Info, error)
	Update(ctx context.Context, req UpdateRequest) (*Info, error)
}

type infoService struct {
	repo Repository
}

func NewService(repo Repository) InfoService {
	return &infoService{repo: repo}
}

// Get never fails with not-found: before the profile is filled in the
// zero value is returned so clients always get a well-formed object.
func (s *infoService) Get(ctx context.Context) (*Info, error) {
	info, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return &Info{}, nil
	}
	return info, nil
}

func (s *infoService) Update(ctx context.Context, req UpdateRequest) (*Info, error) {
	info, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = &Info{}
	}

	if req.Name != nil {
		info.Name = *req.Name
	}
	if req.Description != nil {
		info.Description = *req.Description
	}
	if req.Address != nil {
		info.Address = *req.Address
	}
	if req.Phone != nil {
		info.Phone = *req.Phone
	}
	if req.WorkingHoursText != nil {
		info.WorkingHoursText = *req.WorkingHoursText
	}
	if req.PreparationText != nil {
		info.PreparationText = *req.PreparationText
	}
	if req.Instagram != nil {
		info.Instagram = *req.Instagram
	}

	if err := s.repo.Save(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

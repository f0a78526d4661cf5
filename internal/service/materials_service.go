package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
)

var (
	// ErrClassNotFound indicates the class group does not exist.
	ErrClassNotFound = errors.New("class not found")
	// ErrSubjectNotFound indicates the subject does not exist.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrMaterialNotFound indicates the learning material does not exist.
	ErrMaterialNotFound = errors.New("material not found")
)

// MaterialsService manages the e-learning hierarchy of classes, subjects and
// materials.
type MaterialsService interface {
	ListClasses(ctx context.Context) ([]dto.ClassGroupResponse, error)
	CreateClass(ctx context.Context, req dto.ClassGroupRequest) (dto.ClassGroupResponse, error)
	UpdateClass(ctx context.Context, id uint, req dto.ClassGroupRequest) (dto.ClassGroupResponse, error)
	DeleteClass(ctx context.Context, id uint) (models.ClassGroup, error)

	ListSubjects(ctx context.Context, classGroupID uint) ([]dto.SubjectResponse, error)
	CreateSubject(ctx context.Context, req dto.SubjectRequest) (dto.SubjectResponse, error)
	UpdateSubject(ctx context.Context, id uint, req dto.SubjectRequest) (dto.SubjectResponse, error)
	DeleteSubject(ctx context.Context, id uint) (models.Subject, error)

	ListMaterials(ctx context.Context, subjectID uint) ([]dto.MaterialResponse, error)
	MaterialDetail(ctx context.Context, id uint) (dto.MaterialDetailResponse, error)
	CreateMaterial(ctx context.Context, req dto.MaterialRequest, fileName string) (dto.MaterialResponse, error)
	UpdateMaterial(ctx context.Context, id uint, req dto.MaterialRequest, fileName string) (dto.MaterialResponse, error)
	DeleteMaterial(ctx context.Context, id uint) (models.Material, error)
}

type materialsService struct {
	classes   repository.ClassGroupRepository
	subjects  repository.SubjectRepository
	materials repository.MaterialRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewMaterialsService constructs the e-learning service.
func NewMaterialsService(
	classes repository.ClassGroupRepository,
	subjects repository.SubjectRepository,
	materials repository.MaterialRepository,
	validator *validator.Validate,
	logger zerolog.Logger,
) MaterialsService {
	return &materialsService{
		classes:   classes,
		subjects:  subjects,
		materials: materials,
		validator: validator,
		logger:    logger.With().Str("component", "materials_service").Logger(),
	}
}

func (s *materialsService) ListClasses(ctx context.Context) ([]dto.ClassGroupResponse, error) {
	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewClassGroupResponseSlice(classes), nil
}

func (s *materialsService) CreateClass(ctx context.Context, req dto.ClassGroupRequest) (dto.ClassGroupResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ClassGroupResponse{}, err
	}

	class := models.ClassGroup{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
	}

	if err := s.classes.Create(ctx, &class); err != nil {
		return dto.ClassGroupResponse{}, err
	}
	return dto.NewClassGroupResponse(class), nil
}

func (s *materialsService) UpdateClass(ctx context.Context, id uint, req dto.ClassGroupRequest) (dto.ClassGroupResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ClassGroupResponse{}, err
	}

	class, err := s.classes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassGroupResponse{}, ErrClassNotFound
		}
		return dto.ClassGroupResponse{}, err
	}

	class.Title = strings.TrimSpace(req.Title)
	class.Description = strings.TrimSpace(req.Description)

	if err := s.classes.Update(ctx, &class); err != nil {
		return dto.ClassGroupResponse{}, err
	}
	return dto.NewClassGroupResponse(class), nil
}

// DeleteClass removes the class, its subjects and their materials in one
// transaction.
func (s *materialsService) DeleteClass(ctx context.Context, id uint) (models.ClassGroup, error) {
	class, err := s.classes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ClassGroup{}, ErrClassNotFound
		}
		return models.ClassGroup{}, err
	}

	if err := s.classes.DeleteCascade(ctx, id); err != nil {
		return models.ClassGroup{}, err
	}

	s.logger.Info().Uint("class_id", id).Msg("class removed with subjects and materials")
	return class, nil
}

func (s *materialsService) ListSubjects(ctx context.Context, classGroupID uint) ([]dto.SubjectResponse, error) {
	if _, err := s.classes.FindByID(ctx, classGroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	subjects, err := s.subjects.ListByClass(ctx, classGroupID)
	if err != nil {
		return nil, err
	}
	return dto.NewSubjectResponseSlice(subjects), nil
}

func (s *materialsService) CreateSubject(ctx context.Context, req dto.SubjectRequest) (dto.SubjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SubjectResponse{}, err
	}

	if _, err := s.classes.FindByID(ctx, req.ClassGroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubjectResponse{}, ErrClassNotFound
		}
		return dto.SubjectResponse{}, err
	}

	subject := models.Subject{
		ClassGroupID: req.ClassGroupID,
		Title:        strings.TrimSpace(req.Title),
		Icon:         strings.TrimSpace(req.Icon),
	}

	if err := s.subjects.Create(ctx, &subject); err != nil {
		return dto.SubjectResponse{}, err
	}
	return dto.NewSubjectResponse(subject), nil
}

func (s *materialsService) UpdateSubject(ctx context.Context, id uint, req dto.SubjectRequest) (dto.SubjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SubjectResponse{}, err
	}

	subject, err := s.subjects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubjectResponse{}, ErrSubjectNotFound
		}
		return dto.SubjectResponse{}, err
	}

	subject.ClassGroupID = req.ClassGroupID
	subject.Title = strings.TrimSpace(req.Title)
	subject.Icon = strings.TrimSpace(req.Icon)

	if err := s.subjects.Update(ctx, &subject); err != nil {
		return dto.SubjectResponse{}, err
	}
	return dto.NewSubjectResponse(subject), nil
}

func (s *materialsService) DeleteSubject(ctx context.Context, id uint) (models.Subject, error) {
	subject, err := s.subjects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Subject{}, ErrSubjectNotFound
		}
		return models.Subject{}, err
	}

	if err := s.subjects.DeleteCascade(ctx, id); err != nil {
		return models.Subject{}, err
	}
	return subject, nil
}

func (s *materialsService) ListMaterials(ctx context.Context, subjectID uint) ([]dto.MaterialResponse, error) {
	if _, err := s.subjects.FindByID(ctx, subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	materials, err := s.materials.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return dto.NewMaterialResponseSlice(materials), nil
}

func (s *materialsService) MaterialDetail(ctx context.Context, id uint) (dto.MaterialDetailResponse, error) {
	material, err := s.materials.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MaterialDetailResponse{}, ErrMaterialNotFound
		}
		return dto.MaterialDetailResponse{}, err
	}

	subject, err := s.subjects.FindByID(ctx, material.SubjectID)
	if err != nil {
		return dto.MaterialDetailResponse{}, err
	}

	class, err := s.classes.FindByID(ctx, subject.ClassGroupID)
	if err != nil {
		return dto.MaterialDetailResponse{}, err
	}

	more, err := s.materials.ListMore(ctx, material.SubjectID, id, 3)
	if err != nil {
		return dto.MaterialDetailResponse{}, err
	}

	return dto.MaterialDetailResponse{
		Material: dto.NewMaterialResponse(material),
		Subject:  dto.NewSubjectResponse(subject),
		Class:    dto.NewClassGroupResponse(class),
		More:     dto.NewMaterialResponseSlice(more),
	}, nil
}

func (s *materialsService) CreateMaterial(ctx context.Context, req dto.MaterialRequest, fileName string) (dto.MaterialResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.MaterialResponse{}, err
	}

	if _, err := s.subjects.FindByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MaterialResponse{}, ErrSubjectNotFound
		}
		return dto.MaterialResponse{}, err
	}

	material := models.Material{
		SubjectID:   req.SubjectID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		FileName:    fileName,
	}

	if err := s.materials.Create(ctx, &material); err != nil {
		return dto.MaterialResponse{}, err
	}
	return dto.NewMaterialResponse(material), nil
}

func (s *materialsService) UpdateMaterial(ctx context.Context, id uint, req dto.MaterialRequest, fileName string) (dto.MaterialResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.MaterialResponse{}, err
	}

	material, err := s.materials.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MaterialResponse{}, ErrMaterialNotFound
		}
		return dto.MaterialResponse{}, err
	}

	material.SubjectID = req.SubjectID
	material.Title = strings.TrimSpace(req.Title)
	material.Description = strings.TrimSpace(req.Description)
	if fileName != "" {
		material.FileName = fileName
	}

	if err := s.materials.Update(ctx, &material); err != nil {
		return dto.MaterialResponse{}, err
	}
	return dto.NewMaterialResponse(material), nil
}

// DeleteMaterial returns the removed record so the caller can clean up the file.
func (s *materialsService) DeleteMaterial(ctx context.Context, id uint) (models.Material, error) {
	material, err := s.materials.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Material{}, ErrMaterialNotFound
		}
		return models.Material{}, err
	}

	if err := s.materials.Delete(ctx, id); err != nil {
		return models.Material{}, err
	}
	return material, nil
}

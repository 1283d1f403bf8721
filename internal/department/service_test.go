package department_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/danindra/workforce-scheduling/internal"
	departmentDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/department"
	"github.com/danindra/workforce-scheduling/internal/department"
)

func TestDepartmentService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Service Suite")
}

type mockDepartmentRepository struct {
	departments map[int64]*departmentDatamodel.Department
	members     map[int64]int64
	nextID      int64
}

func newMockDepartmentRepository() *mockDepartmentRepository {
	return &mockDepartmentRepository{
		departments: make(map[int64]*departmentDatamodel.Department),
		members:     make(map[int64]int64),
		nextID:      1,
	}
}

func (m *mockDepartmentRepository) ListByCompany(_ context.Context, companyID int64) ([]*departmentDatamodel.Department, error) {
	out := make([]*departmentDatamodel.Department, 0)
	for _, d := range m.departments {
		if d.CompanyID == companyID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDepartmentRepository) GetByID(_ context.Context, id int64) (*departmentDatamodel.Department, error) {
	d, ok := m.departments[id]
	if !ok {
		return nil, errors.New("department not found")
	}
	return d, nil
}

func (m *mockDepartmentRepository) Create(_ context.Context, d *departmentDatamodel.Department) error {
	d.ID = m.nextID
	m.nextID++
	m.departments[d.ID] = d
	return nil
}

func (m *mockDepartmentRepository) Update(_ context.Context, d *departmentDatamodel.Department) error {
	m.departments[d.ID] = d
	return nil
}

func (m *mockDepartmentRepository) Delete(_ context.Context, id int64) error {
	delete(m.departments, id)
	return nil
}

func (m *mockDepartmentRepository) CountMembers(_ context.Context, departmentID int64) (int64, error) {
	return m.members[departmentID], nil
}

var _ = Describe("Department Service", func() {
	var (
		repo    *mockDepartmentRepository
		service *department.Service
	)

	admin := &internal.Principal{ID: 1, RoleID: 1, CompanyID: 1, IsActive: true}

	BeforeEach(func() {
		repo = newMockDepartmentRepository()
		service = department.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("Create", func() {
		It("creates a department in the caller's company", func() {
			dept, err := service.Create(context.Background(), admin, department.DepartmentDTO{
				Name:        "Front of House",
				Description: "Service floor staff",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(dept.Name).To(Equal("Front of House"))
			Expect(dept.CompanyID).To(Equal(int64(1)))
			Expect(dept.MemberCount).To(BeZero())
		})

		It("requires a name", func() {
			_, err := service.Create(context.Background(), admin, department.DepartmentDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Delete", func() {
		It("refuses while employees are still assigned", func() {
			dept, err := service.Create(context.Background(), admin, department.DepartmentDTO{Name: "Kitchen"})
			Expect(err).NotTo(HaveOccurred())

			repo.members[dept.ID] = 4
			Expect(service.Delete(context.Background(), admin, dept.ID)).
				To(MatchError(internal.ErrDepartmentInUse))
			Expect(repo.departments).To(HaveKey(dept.ID))
		})

		It("deletes an empty department", func() {
			dept, err := service.Create(context.Background(), admin, department.DepartmentDTO{Name: "Kitchen"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(context.Background(), admin, dept.ID)).To(Succeed())
			Expect(repo.departments).NotTo(HaveKey(dept.ID))
		})
	})

	Describe("List", func() {
		It("reports member counts per department", func() {
			dept, err := service.Create(context.Background(), admin, department.DepartmentDTO{Name: "Kitchen"})
			Expect(err).NotTo(HaveOccurred())
			repo.members[dept.ID] = 2

			departments, err := service.List(context.Background(), admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(HaveLen(1))
			Expect(departments[0].MemberCount).To(Equal(int64(2)))
		})
	})

	Describe("tenant scoping", func() {
		It("hides another company's department", func() {
			foreign := &departmentDatamodel.Department{Name: "Foreign", CompanyID: 2}
			Expect(repo.Create(context.Background(), foreign)).To(Succeed())

			_, err := service.Get(context.Background(), admin, foreign.ID)
			Expect(err).To(MatchError(internal.ErrDepartmentNotFound))

			Expect(service.Delete(context.Background(), admin, foreign.ID)).
				To(MatchError(internal.ErrDepartmentNotFound))
		})
	})
})

package apiclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/schooladmin/internal/domain/models"
)

// Schools returns every school.
func (c *Client) Schools(ctx context.Context) ([]models.School, error) {
	return Fetch[models.School](ctx, c, ResourceSchools)
}

// Centers returns every center.
func (c *Client) Centers(ctx context.Context) ([]models.Center, error) {
	return Fetch[models.Center](ctx, c, ResourceCenters)
}

// Districts returns every district.
func (c *Client) Districts(ctx context.Context) ([]models.District, error) {
	return Fetch[models.District](ctx, c, ResourceDistricts)
}

// Tehsils returns every tehsil.
func (c *Client) Tehsils(ctx context.Context) ([]models.Tehsil, error) {
	return Fetch[models.Tehsil](ctx, c, ResourceTehsils)
}

// Teachers returns every teacher.
func (c *Client) Teachers(ctx context.Context) ([]models.Teacher, error) {
	return Fetch[models.Teacher](ctx, c, ResourceTeachers)
}

// Students returns every student.
func (c *Client) Students(ctx context.Context) ([]models.Student, error) {
	return Fetch[models.Student](ctx, c, ResourceStudents)
}

// CreateSchool POSTs a new school. s.ID should be 0; the API assigns ids.
func (c *Client) CreateSchool(ctx context.Context, s models.School) error {
	return c.submit(ctx, http.MethodPost, apiPath(ResourceSchools), ResourceSchools, s, nil)
}

// BulkCreateTeachers POSTs all teachers in one request. The API accepts or
// rejects the batch as a whole.
func (c *Client) BulkCreateTeachers(ctx context.Context, ts []models.Teacher) error {
	return c.submit(ctx, http.MethodPost, apiPath("Teachers/Bulk"), "Teachers/Bulk", ts, nil)
}

// CreateStudent POSTs a new student.
func (c *Client) CreateStudent(ctx context.Context, s models.Student) error {
	return c.submit(ctx, http.MethodPost, apiPath("students"), "students", s, nil)
}

// DeleteStudent deletes the student with the given id.
func (c *Client) DeleteStudent(ctx context.Context, id int) error {
	return c.submit(ctx, http.MethodDelete, apiPath(ResourceStudents+"/"+itoa(id)), ResourceStudents+"/{id}", nil, nil)
}

// RegisterUser POSTs a new console user.
func (c *Client) RegisterUser(ctx context.Context, u models.UserDetails) error {
	return c.submit(ctx, http.MethodPost, apiPath("UserDetails"), "UserDetails", u, nil)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	path := strings.TrimPrefix(c.loginPath, "/")
	if err := c.submit(ctx, http.MethodPost, path, "login", loginRequest{Username: username, Password: password}, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Token) == "" {
		return "", ErrNoToken
	}
	return resp.Token, nil
}

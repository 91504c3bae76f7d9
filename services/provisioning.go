package services

import (
	"fmt"
	"log"

	"github.com/brightdude/GreenDotPortfolioDemo-sub000/config"
	"github.com/brightdude/GreenDotPortfolioDemo-sub000/models"
	"gorm.io/gorm"
)

// ProvisioningService orchestrates the Teams side of a facility: creating a
// team named after the facility's building, a recordings channel, and adding
// the facility contact as member when their directory user exists. The
// created resource ids are persisted on the facility document.
type ProvisioningService struct {
	Store *Store
	Graph *GraphClient
	cfg   *config.Config
}

func NewProvisioningService(dbConn *gorm.DB, graph *GraphClient, cfg *config.Config) *ProvisioningService {
	return &ProvisioningService{
		Store: NewStore(dbConn),
		Graph: graph,
		cfg:   cfg,
	}
}

// ProvisionFacility creates the Teams resources for a facility. Returns
// (nil, nil) when the facility does not exist and a ConflictError when it
// already has a team.
func (s *ProvisioningService) ProvisionFacility(facilityID string) (*models.Facility, error) {
	facility, err := GetByID[models.Facility](s.Store, facilityID)
	if err != nil || facility == nil {
		return nil, err
	}

	if facility.TeamID != "" {
		return nil, &ConflictError{Message: fmt.Sprintf(
			"Facility '%s' is already provisioned (team %s)", facility.ID, facility.TeamID)}
	}

	teamName := facility.DisplayName
	if facility.BuildingName != "" {
		teamName = fmt.Sprintf("%s - %s", facility.BuildingName, facility.DisplayName)
	}

	teamID, err := s.Graph.CreateTeam(teamName, facility.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create team for facility '%s': %w", facility.ID, err)
	}

	channelID, err := s.Graph.CreateChannel(teamID, "Recordings")
	if err != nil {
		return nil, fmt.Errorf("failed to create channel for facility '%s': %w", facility.ID, err)
	}

	if facility.ContactEmail != "" {
		user, err := s.Graph.GetUser(facility.ContactEmail)
		switch {
		case err != nil:
			log.Printf("[WARNING] Directory lookup for %s failed: %v", facility.ContactEmail, err)
		case user == nil:
			log.Printf("[WARNING] No directory user found for %s; skipping membership", facility.ContactEmail)
		default:
			if err := s.Graph.AddMember(teamID, user.ID); err != nil {
				log.Printf("[WARNING] Failed to add %s to team %s: %v", facility.ContactEmail, teamID, err)
			}
		}
	}

	facility.TeamID = teamID
	facility.ChannelID = channelID
	if _, err := Upsert(s.Store, facility); err != nil {
		return nil, err
	}

	if facility.ContactEmail != "" {
		if err := SendEmail(s.cfg, BuildFacilityProvisionedEmail(facility)); err != nil {
			log.Printf("Error sending provisioning notification for facility %s: %v", facility.ID, err)
		}
	}

	return facility, nil
}

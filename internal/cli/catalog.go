package cli

import "quizroom/internal/domain"

// DefaultChallengeID is the challenge rooms fall back to when the
// requested one is unknown.
const DefaultChallengeID = "vocational"

// builtinChallenges provides the built-in question catalog; swap the
// loader with a Postgres-backed one in production.
func builtinChallenges() map[string]domain.Challenge {
	return map[string]domain.Challenge{
		DefaultChallengeID: {
			ID:   DefaultChallengeID,
			Name: "Engineering Vocational Quiz",
			Questions: []domain.Question{
				{
					ID:     "nq1",
					Prompt: "If an algorithm is a finite sequence of instructions to solve a problem, which option BEST describes an essential trait of a good algorithm?",
					Options: []domain.Option{
						{ID: "nq1_opt1", Text: "Being written in the newest programming language."},
						{ID: "nq1_opt2", Text: "Being as short as possible, even if hard to understand."},
						{ID: "nq1_opt3", Text: "Being efficient in time and resources, and being clear."},
						{ID: "nq1_opt4", Text: "Working only for one specific set of inputs."},
					},
					CorrectOptionID: "nq1_opt3",
					SkillArea:       "Programming Logic",
					Difficulty:      "easy",
				},
				{
					ID:     "nq2",
					Prompt: "In computer networking, what does the acronym 'IP' stand for in 'IP address'?",
					Options: []domain.Option{
						{ID: "nq2_opt1", Text: "Internal Protocol"},
						{ID: "nq2_opt2", Text: "Internet Protocol"},
						{ID: "nq2_opt3", Text: "Instruction Pointer"},
						{ID: "nq2_opt4", Text: "Immediate Power"},
					},
					CorrectOptionID: "nq2_opt2",
					SkillArea:       "Computer Networks",
					Difficulty:      "easy",
				},
				{
					ID:     "nq3",
					Prompt: "What is the result of the boolean expression: (TRUE OR FALSE) AND (NOT FALSE)?",
					Options: []domain.Option{
						{ID: "nq3_opt1", Text: "TRUE"},
						{ID: "nq3_opt2", Text: "FALSE"},
						{ID: "nq3_opt3", Text: "It depends"},
						{ID: "nq3_opt4", Text: "Invalid"},
					},
					CorrectOptionID: "nq3_opt1",
					SkillArea:       "Discrete Mathematics",
					Difficulty:      "easy",
				},
				{
					ID:     "nq4",
					Prompt: "In computer engineering, which component of a computer executes most instructions and calculations?",
					Options: []domain.Option{
						{ID: "nq4_opt1", Text: "RAM"},
						{ID: "nq4_opt2", Text: "Hard drive (HDD/SSD)"},
						{ID: "nq4_opt3", Text: "Central Processing Unit (CPU)"},
						{ID: "nq4_opt4", Text: "Graphics card (GPU)"},
					},
					CorrectOptionID: "nq4_opt3",
					SkillArea:       "Computer Architecture",
					Difficulty:      "easy",
				},
				{
					ID:     "nq5",
					Prompt: "A civil engineer is designing a beam for a bridge. Which material is commonly chosen for its high compressive strength?",
					Options: []domain.Option{
						{ID: "nq5_opt1", Text: "Light wood"},
						{ID: "nq5_opt2", Text: "Vulcanized rubber"},
						{ID: "nq5_opt3", Text: "Reinforced concrete"},
						{ID: "nq5_opt4", Text: "PVC plastic"},
					},
					CorrectOptionID: "nq5_opt3",
					SkillArea:       "Building Materials",
					Difficulty:      "medium",
				},
				{
					ID:     "nq6",
					Prompt: "Which law of thermodynamics states that energy cannot be created or destroyed, only transformed from one form to another?",
					Options: []domain.Option{
						{ID: "nq6_opt1", Text: "Zeroth law"},
						{ID: "nq6_opt2", Text: "First law"},
						{ID: "nq6_opt3", Text: "Second law"},
						{ID: "nq6_opt4", Text: "Third law"},
					},
					CorrectOptionID: "nq6_opt2",
					SkillArea:       "Thermodynamics",
					Difficulty:      "medium",
				},
				{
					ID:     "nq7",
					Prompt: "A Formula 1 car uses a rear wing to generate downforce. This effect is most related to which physics principle?",
					Options: []domain.Option{
						{ID: "nq7_opt1", Text: "Doppler effect"},
						{ID: "nq7_opt2", Text: "Archimedes' principle"},
						{ID: "nq7_opt3", Text: "Bernoulli's principle (pressure difference)"},
						{ID: "nq7_opt4", Text: "Law of universal gravitation"},
					},
					CorrectOptionID: "nq7_opt3",
					SkillArea:       "Aerodynamics",
					Difficulty:      "medium",
				},
				{
					ID:     "nq8",
					Prompt: "Which of the following is a fundamental environmental-engineering measure to mitigate the impact of urban solid waste?",
					Options: []domain.Option{
						{ID: "nq8_opt1", Text: "Increasing the capacity of existing landfills."},
						{ID: "nq8_opt2", Text: "Encouraging disposable consumption to ease collection."},
						{ID: "nq8_opt3", Text: "Implementing selective collection and recycling programs."},
						{ID: "nq8_opt4", Text: "Burning all waste in the open to reduce volume."},
					},
					CorrectOptionID: "nq8_opt3",
					SkillArea:       "Waste Management",
					Difficulty:      "easy",
				},
				{
					ID:     "nq9",
					Prompt: "In transportation engineering, planning a traffic-light system at an intersection mainly aims to:",
					Options: []domain.Option{
						{ID: "nq9_opt1", Text: "Increase the average vehicle speed on the road."},
						{ID: "nq9_opt2", Text: "Prioritize public transport flow exclusively."},
						{ID: "nq9_opt3", Text: "Optimize vehicle flow and pedestrian safety."},
						{ID: "nq9_opt4", Text: "Reduce the number of traffic lanes."},
					},
					CorrectOptionID: "nq9_opt3",
					SkillArea:       "Traffic Engineering",
					Difficulty:      "medium",
				},
				{
					ID:     "nq10",
					Prompt: "If a rectangular plot of land is 20 meters wide and 30 meters deep, what is its total area?",
					Options: []domain.Option{
						{ID: "nq10_opt1", Text: "50 m²"},
						{ID: "nq10_opt2", Text: "100 m²"},
						{ID: "nq10_opt3", Text: "600 m²"},
						{ID: "nq10_opt4", Text: "500 m²"},
					},
					CorrectOptionID: "nq10_opt3",
					SkillArea:       "Geometry",
					Difficulty:      "easy",
				},
				{
					ID:     "nq11",
					Prompt: "A design requires a metal part to expand at most 0.05mm with heat. The engineer must compute the allowed temperature variation. Which physical concept is key here?",
					Options: []domain.Option{
						{ID: "nq11_opt1", Text: "Electrical resistance"},
						{ID: "nq11_opt2", Text: "Thermal expansion"},
						{ID: "nq11_opt3", Text: "Capacitance"},
						{ID: "nq11_opt4", Text: "Moment of inertia"},
					},
					CorrectOptionID: "nq11_opt2",
					SkillArea:       "Thermal Physics",
					Difficulty:      "medium",
				},
				{
					ID:     "nq12",
					Prompt: "Given a data set of measurements, which statistical measure would you use to find the most frequent value?",
					Options: []domain.Option{
						{ID: "nq12_opt1", Text: "Arithmetic mean"},
						{ID: "nq12_opt2", Text: "Median"},
						{ID: "nq12_opt3", Text: "Mode"},
						{ID: "nq12_opt4", Text: "Standard deviation"},
					},
					CorrectOptionID: "nq12_opt3",
					SkillArea:       "Basic Statistics",
					Difficulty:      "easy",
				},
			},
		},
	}
}
